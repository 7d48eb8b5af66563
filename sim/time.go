package sim

// TimeTeller can be used to get the current time.
type TimeTeller interface {
	CurrentTime() VTimeInSec
}

// Named describes an object that has a name.
type Named interface {
	Name() string
}
