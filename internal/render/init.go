// Package render отображает состояние виджета: HTML страница с polar-area
// графиком и серверная PNG отрисовка через go-chart
package render

import (
	"sync"

	"github.com/golang/freetype/truetype"
	"github.com/wcharczuk/go-chart/v2"
)

var (
	initOnce sync.Once
	font     *truetype.Font
	fontErr  error
)

// Init выполняет однократную инициализацию графической библиотеки
// (загрузка шрифта по умолчанию). Повторные вызовы ничего не делают.
func Init() error {
	initOnce.Do(func() {
		font, fontErr = chart.GetDefaultFont()
	})
	return fontErr
}

// Font возвращает шрифт, загруженный Init
func Font() (*truetype.Font, error) {
	if err := Init(); err != nil {
		return nil, err
	}
	return font, nil
}
