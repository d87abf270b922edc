package normalize

import (
	"math"

	"github.com/ukaji3/procdash-go/pkg/procdash/models"
)

var monthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// MonthName maps a month number 1-12 to its three-letter English name.
// Any other value, including blanks and fractions, is an InvalidCategoryError.
func MonthName(column string, v models.Value) (string, error) {
	n, ok := v.Finite()
	if !ok || n != math.Trunc(n) || n < 1 || n > 12 {
		return "", &models.InvalidCategoryError{Column: column, Value: v.Display()}
	}
	return monthNames[int(n)-1], nil
}
