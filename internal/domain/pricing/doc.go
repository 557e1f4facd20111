// Package pricing implements the cost-estimation model: it maps a school's
// unit prices and a student's declared experience level to a single
// comparable total price. All operations are pure functions over in-memory
// data; persistence and presentation live elsewhere.
package pricing
