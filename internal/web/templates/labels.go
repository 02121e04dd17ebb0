package templates

// labels are the fixed texts of the donation pages.
type labels struct {
	Upload    string
	Skip      string
	Donate    string
	Decline   string
	Continue  string
	NoData    string
	Truncated string // Printf format: shown rows, total rows
	Thanks    string
	Close     string
	Error     string
	Retry     string
}

var pageLabels = map[string]labels{
	"en": {
		Upload:    "Upload",
		Skip:      "Skip",
		Donate:    "Yes, donate",
		Decline:   "No",
		Continue:  "Continue",
		NoData:    "No data was found in your file.",
		Truncated: "Showing %d of %d rows.",
		Thanks:    "Thank you",
		Close:     "You can close this page now.",
		Error:     "Something went wrong",
		Retry:     "Start again",
	},
	"nl": {
		Upload:    "Uploaden",
		Skip:      "Overslaan",
		Donate:    "Ja, doneer",
		Decline:   "Nee",
		Continue:  "Verder",
		NoData:    "Er zijn geen gegevens gevonden in uw bestand.",
		Truncated: "%d van %d rijen getoond.",
		Thanks:    "Bedankt",
		Close:     "U kunt deze pagina nu sluiten.",
		Error:     "Er is iets misgegaan",
		Retry:     "Opnieuw beginnen",
	},
}

func labelsFor(lang string) labels {
	if l, ok := pageLabels[lang]; ok {
		return l
	}
	return pageLabels["en"]
}
