// Package main запускает дашборд "Alerts by Signature" для EVE-записей Suricata.
// Сервис реализует:
// - загрузку записей из /eve.json, файла или redis-вывода eve-log
// - агрегацию срабатываний по alert.signature
// - HTML виджет с polar-area графиком и PNG отрисовку
// - экспорт метрик в Prometheus
package main

import (
	_ "net/http/pprof"
	"os"

	"eve-dashboard/internal/cli"
)

var version = "dev"

func main() {
	if err := cli.Run(version); err != nil {
		os.Exit(1)
	}
}
