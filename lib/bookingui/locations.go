package bookingui

// DefaultLocations is the Switchyards location list shown before a
// catalog fetch has supplied live tag names.
var DefaultLocations = []string{
	"Adair Park",
	"Avondale Estates",
	"Buckhead",
	"Cabbagetown",
	"Chamblee",
	"Decatur",
	"Downtown",
	"Midtown",
	"Old Fourth Ward",
	"Roswell",
	"Virginia-Highland",
	"Westside",
}
