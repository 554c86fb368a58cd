// Package door contains the timed door domain: a door that can be locked and
// unlocked, an adapter that turns a timer notification into a state check,
// and a blocking timer that notifies a registered client.
//
// The timeout check inspects the door at notification time. It does not track
// how long the door has actually been open.
package door
