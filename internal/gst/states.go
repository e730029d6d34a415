package gst

// UnknownStateCode is the sentinel returned for state names outside the
// enumerated table.
const UnknownStateCode = "00"

// stateCodes maps normalized Indian state and union territory names to
// their 2-digit GST state codes.
var stateCodes = map[string]string{
	"ANDHRA PRADESH":    "37",
	"ARUNACHAL PRADESH": "12",
	"ASSAM":             "18",
	"BIHAR":             "10",
	"CHHATTISGARH":      "22",
	"GOA":               "30",
	"GUJARAT":           "24",
	"HARYANA":           "06",
	"HIMACHAL PRADESH":  "02",
	"JHARKHAND":         "20",
	"KARNATAKA":         "29",
	"KERALA":            "32",
	"MADHYA PRADESH":    "23",
	"MAHARASHTRA":       "27",
	"MANIPUR":           "14",
	"MEGHALAYA":         "17",
	"MIZORAM":           "15",
	"NAGALAND":          "13",
	"ODISHA":            "21",
	"PUNJAB":            "03",
	"RAJASTHAN":         "08",
	"SIKKIM":            "11",
	"TAMIL NADU":        "33",
	"TELANGANA":         "36",
	"TRIPURA":           "16",
	"UTTAR PRADESH":     "09",
	"UTTARAKHAND":       "05",
	"WEST BENGAL":       "19",

	"ANDAMAN AND NICOBAR ISLANDS":              "35",
	"CHANDIGARH":                               "04",
	"DADRA AND NAGAR HAVELI AND DAMAN AND DIU": "26",
	"DELHI":             "07",
	"JAMMU AND KASHMIR": "01",
	"LADAKH":            "38",
	"LAKSHADWEEP":       "31",
	"PUDUCHERRY":        "34",
}

// StateCode returns the 2-digit GST code for a state name, or
// UnknownStateCode when the name is not in the table. Unknown names are
// not an error; the sentinel flows through to the invoice document.
func StateCode(name string) string {
	if code, ok := stateCodes[normalizeState(name)]; ok {
		return code
	}
	return UnknownStateCode
}
