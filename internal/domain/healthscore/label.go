package healthscore

// Tone es una pista de estilo para la UI.
type Tone string

const (
	ToneSuccess Tone = "success"
	ToneInfo    Tone = "info"
	ToneWarning Tone = "warning"
	ToneDanger  Tone = "danger"
)

type Label struct {
	Text string `json:"label"`
	Tone Tone   `json:"tone"`
}

var (
	LabelExcellent      = Label{Text: "Excellent", Tone: ToneSuccess}
	LabelGood           = Label{Text: "Good", Tone: ToneInfo}
	LabelFair           = Label{Text: "Fair", Tone: ToneWarning}
	LabelNeedsAttention = Label{Text: "Needs Attention", Tone: ToneDanger}
)

// ResolveHealthLabel mapea el score a su tramo. El límite inferior de cada
// tramo es inclusivo (90 => Excellent, 75 => Good, 60 => Fair).
func ResolveHealthLabel(score int) Label {
	switch s := clamp(score); {
	case s >= 90:
		return LabelExcellent
	case s >= 75:
		return LabelGood
	case s >= 60:
		return LabelFair
	default:
		return LabelNeedsAttention
	}
}
