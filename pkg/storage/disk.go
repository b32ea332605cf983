package storage

import (
	"compress/gzip"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/sam12-4/liquor-online/pkg/catalog"
	"github.com/sam12-4/liquor-online/pkg/common/jsoncompat"
)

const snapshotFile = "catalog.json.gz"

// DiskStorage persists the catalog snapshot as gzipped JSON so a storefront
// can restart and serve before the Catalog Service is reachable again.
type DiskStorage struct {
	Path string
}

func NewDiskStorage(path string) *DiskStorage {
	return &DiskStorage{Path: path}
}

type snapshotData struct {
	Products   []catalog.Product  `json:"products"`
	Categories []catalog.Category `json:"categories"`
	Types      []catalog.Type     `json:"types"`
	Brands     []catalog.Brand    `json:"brands"`
	Countries  []catalog.Country  `json:"countries"`
}

func (d *DiskStorage) fileName() string {
	return filepath.Join(d.Path, snapshotFile)
}

func (d *DiskStorage) SaveSnapshot(s *catalog.Snapshot) error {
	if err := os.MkdirAll(d.Path, 0755); err != nil {
		return err
	}
	data := snapshotData{
		Products:   s.Products(),
		Categories: s.Categories(),
		Types:      s.Types(),
		Brands:     s.Brands(),
		Countries:  s.Countries(),
	}
	raw, err := jsoncompat.Marshal(data)
	if err != nil {
		return err
	}

	tmp := d.fileName() + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		return err
	}
	zw := gzip.NewWriter(file)
	if _, err = zw.Write(raw); err == nil {
		err = zw.Close()
	} else {
		zw.Close()
	}
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, d.fileName())
}

func (d *DiskStorage) LoadSnapshot(s *catalog.Snapshot) error {
	file, err := os.Open(d.fileName())
	if err != nil {
		return err
	}
	defer file.Close()
	zr, err := gzip.NewReader(file)
	if err != nil {
		return err
	}
	defer zr.Close()
	raw, err := io.ReadAll(zr)
	if err != nil {
		return err
	}
	var data snapshotData
	if err := jsoncompat.Unmarshal(raw, &data); err != nil {
		return err
	}
	s.Replace(data.Products, data.Categories, data.Types, data.Brands, data.Countries)
	log.Printf("loaded catalog snapshot, %d products", len(data.Products))
	return nil
}

func (d *DiskStorage) HasSnapshot() bool {
	info, err := os.Stat(d.fileName())
	return err == nil && !info.IsDir()
}
