// Package menu manages the office canteen menu catalogue: items with a
// price and a category, plus the category lookup table seeded by the
// schema migration.
package menu
