// Package repositories implements SQLite persistence for the venue cache.
//
// The cache is deliberately shallow: one row per venue holding the fields
// listings and search need, replaced wholesale on every sync. It exists so
// `venues list --cached` and offline name search have something to read;
// anything needing fresh or complete data goes back to the API.
//
// Schema lives in internal/shared/sql and is applied by
// [shared.RunMigrations].
package repositories
