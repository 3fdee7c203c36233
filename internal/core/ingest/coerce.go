package ingest

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

const (
	isoDate      = "2006-01-02"
	brazilDate   = "02/01/2006"
	isoDateTime  = "2006-01-02 15:04:05"
	maxExcelDate = 2958465 // 9999-12-31
)

var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// Date coerces v to a YYYY-MM-DD string. Text is parsed day-first, then as a
// strict DD/MM/YYYY. Numbers are read as spreadsheet serial dates. Anything
// unparseable yields "".
func Date(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case time.Time:
		if x.IsZero() {
			return ""
		}
		return x.Format(isoDate)
	case float64:
		return serialDate(x)
	case int:
		return serialDate(float64(x))
	case int64:
		return serialDate(float64(x))
	case string:
		return parseDate(x)
	default:
		return parseDate(fmt.Sprint(x))
	}
}

// dayFirstDates are tried before dateparse, which reads dotted and dashed
// numeric dates month first.
var dayFirstDates = []string{"2.1.2006", "2-1-2006", "2.1.06", "2-1-06"}

func parseDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range dayFirstDates {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(isoDate)
		}
	}
	if t, err := dateparse.ParseAny(s, dateparse.PreferMonthFirst(false)); err == nil {
		return t.Format(isoDate)
	}
	if t, err := time.Parse(brazilDate, s); err == nil {
		return t.Format(isoDate)
	}
	return ""
}

func serialDate(f float64) string {
	if math.IsNaN(f) || f < 1 || f > maxExcelDate {
		return ""
	}
	days := math.Floor(f)
	return excelEpoch.AddDate(0, 0, int(days)).Format(isoDate)
}

// Int coerces v to an integer, truncating toward zero. Text may use a comma
// as decimal separator ("12,5" is 12). Blank or non-numeric input returns def.
func Int(v any, def int) int {
	switch x := v.(type) {
	case nil:
		return def
	case int:
		return x
	case int64:
		return fromFloat(float64(x), def)
	case float64:
		return fromFloat(x, def)
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return def
		}
		f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
		if err != nil {
			return def
		}
		return fromFloat(f, def)
	default:
		return def
	}
}

func fromFloat(f float64, def int) int {
	if math.IsNaN(f) || math.IsInf(f, 0) || f >= math.MaxInt64 || f <= math.MinInt64 {
		return def
	}
	return int(f)
}

// String renders v as trimmed text. Whole floats print without a fraction so
// a numeric registro cell reads "123", not "123.0".
func String(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case float64:
		if math.IsNaN(x) {
			return ""
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		if x.IsZero() {
			return ""
		}
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 {
			return x.Format(isoDate)
		}
		return x.Format(isoDateTime)
	default:
		return strings.TrimSpace(fmt.Sprint(x))
	}
}
