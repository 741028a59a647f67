// Package volumes holds the construction entry points for the detector
// hardware components: wraps, cryostats, plates, holders, shielding castles
// and calibration sources. Every builder takes a metadata table and a
// backend selector and returns the root logical volume of the component;
// the owning session is reachable through the returned volume.
//
// Two backends exist. The template backend substitutes the metadata into an
// embedded geometry description and parses the result; the procedural
// backend constructs the identical graph with direct solid and material
// calls. Component kinds without a procedural implementation fail with
// ErrUnsupportedBackend instead of falling back.
package volumes
