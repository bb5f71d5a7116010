package finance

// GrossYield returns annual rent as a percentage of property value.
// Returns 0 when either input is non-positive; a gross yield is never
// negative.
func GrossYield(annualRent, propertyValue float64) float64 {
	if annualRent <= 0 || propertyValue <= 0 {
		return 0
	}
	return annualRent / propertyValue * 100
}

// NetYield returns rent minus expenses as a percentage of property value.
// Unlike gross yield this may be negative — expenses exceeding rent is a
// valid, reportable state — but a non-positive property value still yields 0.
func NetYield(annualRent, annualExpenses, propertyValue float64) float64 {
	if propertyValue <= 0 {
		return 0
	}
	return (annualRent - annualExpenses) / propertyValue * 100
}
