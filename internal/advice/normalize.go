package advice

// Strategy extracts advice from raw model text.
// Implementations must be stateless and safe for concurrent use.
type Strategy interface {
	// Name returns a short identifier for metrics and logging,
	// e.g. "json-object", "cue-extraction".
	Name() string

	// Extract returns the advice and true, or false if the strategy does
	// not apply to this text.
	Extract(raw string) (*Advice, bool)
}

// Strategy names, in chain order.
const (
	StrategyJSONObject    = "json-object"
	StrategyCueExtraction = "cue-extraction"
	StrategyRawEcho       = "raw-echo"
)

// DefaultStrategies returns the extraction chain in priority order.
func DefaultStrategies() []Strategy {
	return []Strategy{
		&JSONObjectStrategy{},
		&CueStrategy{},
		&RawEchoStrategy{},
	}
}

var defaultChain = DefaultStrategies()

// Normalize converts raw model text into Advice. It never fails and never
// panics: malformed text degrades to heuristic extraction or a raw echo.
func Normalize(raw string) *Advice {
	adv, _ := NormalizeWithStrategy(raw)
	return adv
}

// NormalizeWithStrategy is Normalize that also reports which strategy
// produced the result.
func NormalizeWithStrategy(raw string) (*Advice, string) {
	return RunStrategies(defaultChain, raw)
}

// RunStrategies executes strategies in order and returns the first result.
// A panicking strategy counts as not applicable. When nothing applies the
// raw text is echoed.
func RunStrategies(strategies []Strategy, raw string) (*Advice, string) {
	for _, s := range strategies {
		if adv, ok := safeExtract(s, raw); ok && adv != nil {
			return adv.normalizeEmpty(), s.Name()
		}
	}
	return echo(raw).normalizeEmpty(), StrategyRawEcho
}

func safeExtract(s Strategy, raw string) (adv *Advice, ok bool) {
	defer func() {
		if recover() != nil {
			adv, ok = nil, false
		}
	}()
	return s.Extract(raw)
}

// RawEchoStrategy always applies and returns the text as insights.
type RawEchoStrategy struct{}

func (*RawEchoStrategy) Name() string { return StrategyRawEcho }

func (*RawEchoStrategy) Extract(raw string) (*Advice, bool) {
	return echo(raw), true
}

func echo(raw string) *Advice {
	return &Advice{
		IndustryInsights: raw,
		RawResponse:      raw,
		ParseError:       true,
	}
}
