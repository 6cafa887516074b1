package checkin

import (
	"fmt"
	"log"
	"strings"

	"github.com/biter777/countries"
	"github.com/ttacon/libphonenumber"
)

// PhoneNormaliser rewrites worker phone numbers into E.164 so the web
// application can build tel: links.
type PhoneNormaliser struct {
	Region string
	Logger Logger
}

// NewPhoneNormaliser resolves defaultCountry (a name, Alpha-2 or Alpha-3 code)
// to the region used for numbers written without a country code.
func NewPhoneNormaliser(defaultCountry string) (*PhoneNormaliser, error) {
	c := countries.ByName(defaultCountry) // will match on Alpha-2 / Alpha-3 / Name
	if countries.Unknown == c {
		return nil, fmt.Errorf("unknown phone default country %q", defaultCountry)
	}
	return &PhoneNormaliser{Region: c.Alpha2(), Logger: log.Default()}, nil
}

// Normalise returns number in E.164 format, or unchanged if it can't be parsed.
func (p *PhoneNormaliser) Normalise(number string) string {
	if strings.TrimSpace(number) == "" {
		return number
	}
	num, err := libphonenumber.Parse(number, p.Region)
	if err == nil && !libphonenumber.IsValidNumber(num) {
		err = fmt.Errorf("invalid number for region %s", p.Region)
	}
	if err != nil {
		if p.Logger != nil {
			p.Logger.Printf("Warning: failed to parse phone number %q: %v (leaving unchanged)", number, err)
		}
		return number
	}
	return libphonenumber.Format(num, libphonenumber.E164)
}
