package models

// Tags is the controlled vocabulary the admin console offers. The server does
// not reject tags outside it.
var Tags = []string{
	"all-inclusive",
	"beach",
	"city",
	"mountains",
	"culture",
	"adventure",
	"relaxation",
	"wellness",
	"party",
	"family",
	"romantic",
	"luxury",
	"budget",
}

var TagLabels = map[string]string{
	"all-inclusive": "All-Inclusive",
	"beach":         "Strand",
	"city":          "Stadt",
	"mountains":     "Berge",
	"culture":       "Kultur",
	"adventure":     "Abenteuer",
	"relaxation":    "Entspannung",
	"wellness":      "Wellness",
	"party":         "Party",
	"family":        "Familie",
	"romantic":      "Romantik",
	"luxury":        "Luxus",
	"budget":        "Günstig",
}
