// Package db embeds the schema applied by RunMigrations at startup.
package db

import _ "embed"

// Schema holds the DDL for the storefront tables: products, coupons,
// customers, carts, orders and API keys.
//
//go:embed migrations/001_schema.sql
var Schema string
