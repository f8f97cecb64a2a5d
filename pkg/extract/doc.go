// Package extract turns the free-form event description into the values the
// form workflow redistributes: the leader's email address, the trailing
// section that belongs in the "Additional event information" field, and a
// cleaned copy of the description markup with blank template lines removed.
//
// Every function here is pure. Missing patterns fail with ErrPatternNotFound
// rather than returning partial text.
package extract
