package format

import "time"

func Datify(value time.Time) string {
	return value.UTC().Format("2006-01-02 15:04:05 UTC")
}
