package scraper

import (
	"fmt"

	"go.etcd.io/bbolt"
)

var scrapedBucket = []byte("ScrapedURLs")

// Checkpointer tracks already-scraped recipe URLs in a bbolt database so
// interrupted runs skip pages they have already fetched.
type Checkpointer struct {
	db *bbolt.DB
}

// NewCheckpointer opens (or creates) the checkpoint database.
func NewCheckpointer(dbPath string) (*Checkpointer, error) {
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open checkpoint database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(scrapedBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return &Checkpointer{db: db}, nil
}

// Close closes the underlying database
func (c *Checkpointer) Close() error {
	return c.db.Close()
}

// IsScraped returns true if the given URL has already been scraped
func (c *Checkpointer) IsScraped(url string) bool {
	var exists bool
	c.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(scrapedBucket)
		exists = b.Get([]byte(url)) != nil
		return nil
	})
	return exists
}

// MarkScraped marks the given URL as scraped
func (c *Checkpointer) MarkScraped(url string) error {
	return c.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(scrapedBucket)
		return b.Put([]byte(url), []byte("completed"))
	})
}
