package order

import (
	"fmt"
	"time"
)

// GenerateOrderID builds the human-readable order reference in the form
// YYYYMMDD_WW_PP_SSS: the date, the two-digit zero-padded ward, the last
// two digits of the customer's phone, and a three-digit serial. The serial
// is not guaranteed unique; the order's document key is the true unique
// identifier and this ID is a display convenience.
func GenerateOrderID(ward int, phone string, now time.Time, serial int) string {
	last2 := phone
	if len(phone) > 2 {
		last2 = phone[len(phone)-2:]
	}
	return fmt.Sprintf("%s_%02d_%s_%03d", now.Format("20060102"), ward, last2, serial%1000)
}
