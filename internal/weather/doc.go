// Package weather loads EnergyPlus Weather (EPW) files into an annual hourly
// series.
//
// # File Layout
//
// An EPW file is comma-delimited text with a fixed structure:
//
//	line 1      LOCATION header
//	lines 2-8   DESIGN CONDITIONS, TYPICAL/EXTREME PERIODS, GROUND TEMPERATURES,
//	            HOLIDAYS/DAYLIGHT SAVINGS, COMMENTS 1, COMMENTS 2, DATA PERIODS
//	line 9+     one data row per hour, 8760 rows for a non-leap year
//
// Location header fields (zero-based):
//
//	0 "LOCATION"   1 city       2 state/province   3 country
//	4 source       5 WMO id     6 latitude (N+)    7 longitude (E+)
//	8 time zone (hours from UTC, E+)                9 elevation (m)
//
// Only fields 1, 5, 6, 7 and 8 are read. Numeric fields that do not parse are
// left at zero. The time zone is read as an integer prefix, so "-7.0" is -7.
//
// # Data Rows
//
// Each data row holds 35 fields. The first 22 are scanned and seven of them are
// kept, see [Columns]:
//
//	 6 dry-bulb temperature, C          7 dew point temperature, C
//	 8 relative humidity, %            13 global horizontal radiation, Wh/m2
//	14 direct normal radiation, Wh/m2  15 diffuse horizontal radiation, Wh/m2
//	21 wind speed, m/s
//
// Radiation values are integrals over the hour ending at the row's hour stamp,
// so row 1 (hour 1) covers 00:00-01:00 local standard time.
//
// # Leniency
//
// A consumed token that is empty or not a number is stored as 0 and counted in
// [Series.Coerced]. Files shorter than 8760 rows leave the trailing hours at 0
// and report the number of rows actually read in [Series.Rows]. Neither case is
// an error; the only fatal condition is a file that cannot be opened
// ([ErrNotFound]) or a stream that fails mid-read.
package weather
