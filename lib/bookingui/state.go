package bookingui

// viewState is a tagged union: exactly one state is active at a time
// and each variant carries only the data that state needs.
type viewState interface {
	isViewState()
}

type locationSelectState struct{}

// bookingFormState is active while a location is selected. SpaceIds
// is empty until the resolve pipeline delivers a result; Pending is
// true while that fetch is still in flight.
type bookingFormState struct {
	Location string
	SpaceIds []string
	Pending  bool
	Warning  string
}

type confirmationState struct {
	Location string
}

func (locationSelectState) isViewState() {}
func (bookingFormState) isViewState()    {}
func (confirmationState) isViewState()   {}
