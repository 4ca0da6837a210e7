// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package events

// Priority ranks listeners of the same Event. Dispatch runs Highest first,
// Lowest last; listeners sharing a priority run in registration order.
type Priority int8

// The five priority levels, ordered from Highest to Lowest.
const (
	Highest Priority = iota
	High
	Normal
	Low
	Lowest
)

func (p Priority) String() string {
	switch p {
	case Highest:
		return "highest"
	case High:
		return "high"
	case Normal:
		return "normal"
	case Low:
		return "low"
	case Lowest:
		return "lowest"
	}

	return "unknown"
}

// valid reports whether p is one of the five defined levels.
func (p Priority) valid() bool {
	return p >= Highest && p <= Lowest
}
