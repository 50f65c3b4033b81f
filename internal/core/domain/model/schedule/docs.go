// Package schedule decides whether a store is accepting orders at a given instant.
//
// A store's opening hours come in one of two stored formats:
//   - WeeklySpec: per weekday, an open flag and any number of {open, close} periods
//     (split shifts such as lunch and dinner)
//   - LegacySpec: per weekday, an enabled flag and a single openTime/closeTime pair
//
// Times are "HH:MM" wall-clock strings in store-local time; there is no timezone.
// Ranges are inclusive on both ends. A period whose close is before its open is
// not wrapped past midnight and never matches.
//
// Evaluation fails open: a missing schedule, a disabled business-hours flag or
// malformed data all report the store as open. Malformed data is logged.
package schedule
