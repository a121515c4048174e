package game

// Config is the table configuration used to start a hand.
type Config struct {
	NumSeats      int `json:"numSeats"`
	SmallBlind    int `json:"smallBlind"`
	BigBlind      int `json:"bigBlind"`
	Ante          int `json:"ante"` // accepted and validated, never deducted
	StartingStack int `json:"startingStack"`

	// Seed makes the shuffle reproducible. Nil shuffles from OS entropy.
	Seed *int64 `json:"seed,omitempty"`

	// HistoryLimit caps GameState.History to the most recent entries.
	// Zero keeps everything.
	HistoryLimit int `json:"historyLimit,omitempty"`

	// CarryStacks starts each seat with its stack from the previous hand
	// instead of StartingStack. Busted seats are topped back up.
	CarryStacks bool `json:"carryStacks,omitempty"`
}

// DefaultConfig returns 1/2 blinds with 200 chip stacks.
func DefaultConfig() Config {
	return Config{
		NumSeats:      NumSeats,
		SmallBlind:    1,
		BigBlind:      2,
		Ante:          0,
		StartingStack: 200,
	}
}

// WithSeed returns a copy of c with the shuffle seed set.
func (c Config) WithSeed(seed int64) Config {
	c.Seed = &seed
	return c
}

// Validate reports the first problem with the configuration as a
// *ConfigError.
func (c Config) Validate() error {
	switch {
	case c.NumSeats != NumSeats:
		return &ConfigError{Field: "numSeats", Reason: "table must have exactly 6 seats"}
	case c.SmallBlind <= 0:
		return &ConfigError{Field: "smallBlind", Reason: "must be positive"}
	case c.BigBlind <= 0:
		return &ConfigError{Field: "bigBlind", Reason: "must be positive"}
	case c.BigBlind < c.SmallBlind:
		return &ConfigError{Field: "bigBlind", Reason: "must not be smaller than the small blind"}
	case c.Ante < 0:
		return &ConfigError{Field: "ante", Reason: "must not be negative"}
	case c.StartingStack <= 0:
		return &ConfigError{Field: "startingStack", Reason: "must be positive"}
	case c.HistoryLimit < 0:
		return &ConfigError{Field: "historyLimit", Reason: "must not be negative"}
	}
	return nil
}
