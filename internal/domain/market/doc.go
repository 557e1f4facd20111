// Package market implements the ranking engine over one city's worth of
// school records: the premium-aware display order for the public comparison
// page and the aggregate statistics shown on a school's private dashboard.
// Both operations are pure transformations over an already-fetched snapshot.
package market
