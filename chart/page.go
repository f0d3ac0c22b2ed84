package chart

import (
	"encoding/json"

	"github.com/rohanthewiz/element"
	"github.com/rohanthewiz/serr"
)

// canvasID is the element the renderer binds to on the dashboard page.
const canvasID = "mood-chart"

// ConfigJSON marshals the chart configuration for handing to the
// canvas renderer.
func (lc LineChart) ConfigJSON() (string, error) {
	raw, err := json.Marshal(lc)
	if err != nil {
		return "", serr.Wrap(err, "failed to marshal chart config")
	}
	return string(raw), nil
}

// Mount renders the chart canvas and its init script into the page
// being built. A config that cannot be marshalled renders a quiet
// placeholder instead of breaking the whole page.
func Mount(b *element.Builder, lc LineChart) any {
	cfg, err := lc.ConfigJSON()
	if err != nil {
		b.DivClass("mood-chart-error").T("Mood chart unavailable")
		return nil
	}

	b.DivClass("mood-chart-wrap").R(
		// element has no canvas helper; inject the tag directly
		b.T(`<canvas id="`+canvasID+`"></canvas>`),
		b.Script().T(
			`new Chart(document.getElementById('`+canvasID+`'), `+cfg+`);`),
	)
	return nil
}
