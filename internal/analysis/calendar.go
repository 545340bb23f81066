package analysis

import (
	"fmt"
	"time"
)

// MonthNames is the fixed January..December column order.
var MonthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// MonthAbbrs is the fixed Jan..Dec category order.
var MonthAbbrs = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// MonthName returns the full English month name, independent of locale.
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return fmt.Sprintf("%%!Month(%d)", int(m))
	}
	return MonthNames[m-1]
}

// MonthAbbr returns the three-letter English abbreviation, e.g. "Jan".
func MonthAbbr(m time.Month) string {
	if m < time.January || m > time.December {
		return fmt.Sprintf("%%!Month(%d)", int(m))
	}
	return MonthAbbrs[m-1]
}
