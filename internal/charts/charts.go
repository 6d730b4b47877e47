// Package charts builds Chart.js-compatible configurations for the
// dashboard and treatment views. These are pure presentation of numbers
// already aggregated elsewhere; no business rules live here.
package charts

// Config is a renderable chart: type, data and display options.
type Config struct {
	Type    string  `json:"type"`
	Data    Data    `json:"data"`
	Options Options `json:"options"`
}

type Data struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

type Dataset struct {
	Label           string    `json:"label,omitempty"`
	Data            []float64 `json:"data"`
	BackgroundColor []string  `json:"backgroundColor,omitempty"`
	BorderColor     []string  `json:"borderColor,omitempty"`
	BorderWidth     int       `json:"borderWidth,omitempty"`
}

type Options struct {
	Responsive bool    `json:"responsive"`
	Plugins    Plugins `json:"plugins"`
	Cutout     string  `json:"cutout,omitempty"`
	Scales     *Scales `json:"scales,omitempty"`
}

type Plugins struct {
	Legend Legend `json:"legend"`
	Title  Title  `json:"title"`
}

type Legend struct {
	Position string `json:"position"`
}

type Title struct {
	Display bool   `json:"display"`
	Text    string `json:"text"`
}

type Scales struct {
	Y Axis `json:"y"`
}

type Axis struct {
	BeginAtZero bool    `json:"beginAtZero"`
	Max         float64 `json:"max,omitempty"`
}

// ActivePatientsDoughnut renders the active vs inactive patient split.
func ActivePatientsDoughnut(active, total int) Config {
	inactive := total - active
	if inactive < 0 {
		inactive = 0
	}
	return Config{
		Type: "doughnut",
		Data: Data{
			Labels: []string{"Active Patients", "Inactive Patients"},
			Datasets: []Dataset{{
				Data:            []float64{float64(active), float64(inactive)},
				BackgroundColor: []string{"rgba(63, 81, 181, 0.8)", "rgba(230, 243, 251, 0.8)"},
				BorderColor:     []string{"rgba(63, 81, 181, 1)", "rgba(200, 213, 221, 1)"},
				BorderWidth:     1,
			}},
		},
		Options: Options{
			Responsive: true,
			Plugins: Plugins{
				Legend: Legend{Position: "bottom"},
				Title:  Title{Display: true, Text: "Active vs. Inactive Patients"},
			},
			Cutout: "70%",
		},
	}
}

// ResponderRateBar renders the responder rate as a single percentage bar.
func ResponderRateBar(rate float64) Config {
	return Config{
		Type: "bar",
		Data: Data{
			Labels: []string{"Responder Rate"},
			Datasets: []Dataset{{
				Label:           "Responder Rate (%)",
				Data:            []float64{rate},
				BackgroundColor: []string{"rgba(232, 248, 232, 0.8)"},
				BorderColor:     []string{"rgba(200, 232, 200, 1)"},
				BorderWidth:     1,
			}},
		},
		Options: Options{
			Responsive: true,
			Plugins: Plugins{
				Legend: Legend{Position: "bottom"},
				Title:  Title{Display: true, Text: "Treatment Responder Rate"},
			},
			Scales: &Scales{Y: Axis{BeginAtZero: true, Max: 100}},
		},
	}
}

// ResponseDistributionDoughnut renders responders vs non-responders for
// the treatment list. Not-evaluated treatments are already excluded by
// the caller.
func ResponseDistributionDoughnut(responders, nonResponders int) Config {
	return Config{
		Type: "doughnut",
		Data: Data{
			Labels: []string{"Responders", "Non-Responders"},
			Datasets: []Dataset{{
				Data:            []float64{float64(responders), float64(nonResponders)},
				BackgroundColor: []string{"rgba(232, 248, 232, 0.8)", "rgba(248, 232, 216, 0.8)"},
				BorderColor:     []string{"rgba(200, 232, 200, 1)", "rgba(230, 200, 180, 1)"},
				BorderWidth:     1,
			}},
		},
		Options: Options{
			Responsive: true,
			Plugins: Plugins{
				Legend: Legend{Position: "bottom"},
				Title:  Title{Display: true, Text: "Treatment Response Distribution"},
			},
			Cutout: "70%",
		},
	}
}
