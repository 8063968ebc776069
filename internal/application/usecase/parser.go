package usecase

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/lucasmn/sales-insights-go/internal/domain/entity"
)

// customerFieldDelimiter separates the packed fields of a Customers-sheet row:
// id_name_email_dob_address_created_date[_extra...].
const customerFieldDelimiter = "_"

var braceStripper = strings.NewReplacer("{", "", "}", "")

// ParseCustomerRows decodes raw delimited customer rows into structured
// records. Rows with fewer than 6 delimited parts are dropped silently; they
// produce no record and no error. A row whose raw value cannot be decoded at
// all aborts the whole upload with an error naming the offending value. The
// asymmetry is deliberate: a short row is lenient filtering, a broken value
// is an input-shape error.
func ParseCustomerRows(rows []string) ([]entity.Customer, error) {
	customers := make([]entity.Customer, 0, len(rows))
	for _, raw := range rows {
		if !utf8.ValidString(raw) {
			return nil, fmt.Errorf("error parsing customer row '%s': value is not valid UTF-8", raw)
		}

		parts := strings.Split(raw, customerFieldDelimiter)
		if len(parts) < 6 {
			continue
		}

		customers = append(customers, entity.Customer{
			CustomerID:  strings.TrimSpace(braceStripper.Replace(parts[0])),
			Name:        parts[1],
			Email:       parts[2],
			DOB:         parts[3],
			Address:     parts[4],
			CreatedDate: parts[5],
		})
	}
	return customers, nil
}
