package models

import "fmt"

// SignatureCount - частотная таблица сигнатур.
// Порядок ключей соответствует порядку первого появления.
type SignatureCount struct {
	keys   []string
	counts map[string]int
}

// NewSignatureCount создает пустую таблицу
func NewSignatureCount() *SignatureCount {
	return &SignatureCount{
		keys:   make([]string, 0),
		counts: make(map[string]int),
	}
}

// Add увеличивает счетчик сигнатуры на 1
func (c *SignatureCount) Add(signature string) {
	if _, ok := c.counts[signature]; !ok {
		c.keys = append(c.keys, signature)
	}
	c.counts[signature]++
}

// Get возвращает количество для сигнатуры (0, если ее нет)
func (c *SignatureCount) Get(signature string) int {
	return c.counts[signature]
}

// Len возвращает количество различных сигнатур
func (c *SignatureCount) Len() int {
	return len(c.keys)
}

// Keys возвращает сигнатуры в порядке первого появления
func (c *SignatureCount) Keys() []string {
	keys := make([]string, len(c.keys))
	copy(keys, c.keys)
	return keys
}

// Total возвращает сумму всех счетчиков
func (c *SignatureCount) Total() int {
	total := 0
	for _, n := range c.counts {
		total += n
	}
	return total
}

// Each обходит таблицу в порядке вставки
func (c *SignatureCount) Each(fn func(signature string, count int)) {
	for _, k := range c.keys {
		fn(k, c.counts[k])
	}
}

// ChartSeries - проекция SignatureCount для графика: три параллельных среза одинаковой длины
type ChartSeries struct {
	Labels []string `json:"labels"`
	Counts []int    `json:"counts"`
	Colors []string `json:"colors"`
}

// Len возвращает количество секторов графика
func (s ChartSeries) Len() int {
	return len(s.Labels)
}

// Total возвращает сумму значений серии
func (s ChartSeries) Total() int {
	total := 0
	for _, n := range s.Counts {
		total += n
	}
	return total
}

// Tooltip возвращает подпись сектора в формате "<label>: <count>"
func (s ChartSeries) Tooltip(i int) string {
	return fmt.Sprintf("%s: %d", s.Labels[i], s.Counts[i])
}
