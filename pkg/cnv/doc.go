// Package cnv reads the header block of CNV instrument recordings.
//
// A header block is a run of marker-prefixed lines ending in a terminator
// line such as "*END*":
//
//	* Sea-Bird SBE 9 Data File:
//	* NMEA Latitude = 20 03.60 S
//	* NMEA Longitude = 70.10
//	* NMEA UTC (Time) = Nov 27 2015 17:55:23
//	# nquan = 2
//	# name 0 = prDM: Pressure, Digiquartz [db]
//	# name 1 = t090C: Temperature [ITS-90, deg C]
//	*END*
//
// NewHeaderReader consumes the block in a single pass and exposes the
// plain lines, the key/value pairs, the column descriptors, and the
// position and time of the cast.
package cnv
