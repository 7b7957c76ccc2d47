// Package reference caches backend reference data (food items, meal
// templates, exercise templates, medication options) in the local database,
// so the journal forms can resolve names and ids while offline.
//
// Refreshing an aggregate replaces its whole table inside one transaction;
// readers never observe a half-swapped cache.
package reference
