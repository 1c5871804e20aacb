package sales

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// NumberDayPrefix devuelve la parte fija del número de venta para el día: "<prefix>-<YYYYMMDD>-".
func NumberDayPrefix(prefix string, day time.Time) string {
	return fmt.Sprintf("%s-%s-", prefix, day.Format("20060102"))
}

// FormatSaleNumber arma "<prefix>-<YYYYMMDD>-<seq de 6 dígitos>".
func FormatSaleNumber(prefix string, day time.Time, seq int) string {
	return fmt.Sprintf("%s%06d", NumberDayPrefix(prefix, day), seq)
}

// ParseSequence extrae el consecutivo de un número con el prefijo de día dado.
func ParseSequence(dayPrefix, number string) (int, bool) {
	rest, ok := strings.CutPrefix(number, dayPrefix)
	if !ok {
		return 0, false
	}
	if rest == "" || strings.TrimLeft(rest, "0123456789") != "" {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
