package kernel

import (
	"errors"
	"fmt"

	"fueldrop/internal/pkg/errs"

	"fueldrop/internal/pkg/guard"
)

// Degrees represents a geographic coordinate component in decimal degrees.
type Degrees float64

const (
	// LatitudeMin is the minimum valid latitude.
	LatitudeMin Degrees = -90
	// LatitudeMax is the maximum valid latitude.
	LatitudeMax Degrees = 90
	// LongitudeMin is the minimum valid longitude.
	LongitudeMin Degrees = -180
	// LongitudeMax is the maximum valid longitude.
	LongitudeMax Degrees = 180
)

// ErrLocationIsNotConstructed is returned when attempting to use an improperly
// initialized Location. Locations must be created via NewLocation.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"location must be created via NewLocation constructor")

// Location is an immutable value object holding the validated geographic
// coordinates of a delivery target. The zero value is invalid and fails
// validation; use the constructor.
//
// Example:
//
//	loc, err := kernel.NewLocation(37.7749, -122.4194)
//	if err != nil {
//	    // handle validation error
//	}
//	fmt.Println(loc) // Output: Location(37.774900,-122.419400)
type Location struct { //nolint:recvcheck //using for validation
	latitude  Degrees
	longitude Degrees
	guard     guard.ConstructorGuard
}

// NewLocation creates a Location from latitude and longitude in decimal
// degrees. Latitude must lie in [-90..90] and longitude in [-180..180];
// out-of-range values produce a validation error.
func NewLocation(latitude Degrees, longitude Degrees) (Location, error) {
	loc := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setLatitude(latitude), loc.setLongitude(longitude)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// Validate checks that the Location was created through NewLocation.
// The zero value fails with ErrLocationIsNotConstructed.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

// Latitude returns the latitude in decimal degrees.
func (l Location) Latitude() Degrees {
	return l.latitude
}

// Longitude returns the longitude in decimal degrees.
func (l Location) Longitude() Degrees {
	return l.longitude
}

// String implements fmt.Stringer in the form "Location(lat,lng)".
func (l Location) String() string {
	return fmt.Sprintf("Location(%f,%f)", l.latitude, l.longitude)
}

// IsEqual reports whether both locations hold the same coordinates.
// Both locations must be properly constructed.
func (l Location) IsEqual(other Location) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return l.latitude == other.latitude && l.longitude == other.longitude, nil
}

// setLatitude sets the latitude with range validation.
// Pointer receiver is intentional: private setters mutate during construction
// while the public API stays on value receivers.
func (l *Location) setLatitude(latitude Degrees) error {
	if latitude < LatitudeMin || latitude > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, LatitudeMin, LatitudeMax)
	}

	l.latitude = latitude
	return nil
}

// setLongitude sets the longitude with range validation.
func (l *Location) setLongitude(longitude Degrees) error {
	if longitude < LongitudeMin || longitude > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, LongitudeMin, LongitudeMax)
	}

	l.longitude = longitude
	return nil
}
