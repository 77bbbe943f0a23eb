package explorer

import (
	"time"

	"github.com/abhisek/careerpath/internal/advice"
)

// adviceMsg carries the result of one advisor call back to the event loop.
type adviceMsg struct {
	Generation uint64
	Advice     *advice.Advice
	Err        error
}

// spinnerTickMsg animates the loading indicator.
type spinnerTickMsg time.Time
