// Package seed imports the hotel-deals feed from CSV, either a local
// file or an object in S3. Imports are idempotent: hotels upsert by
// name and deals that already exist are skipped.
package seed
