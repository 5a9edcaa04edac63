package dataset

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Repository resolves partitions to local files or http(s) URLs.
type Repository struct {
	Locations map[Partition]string
	Client    *http.Client
	Logger    *log.Logger
}

func NewRepository(train, validation, test string) *Repository {
	return &Repository{
		Locations: map[Partition]string{
			Train:      train,
			Validation: validation,
			Test:       test,
		},
	}
}

func (r *Repository) Load(ctx context.Context, partition Partition) (Split, error) {
	var location = r.Locations[partition]
	if location == "" {
		return Split{}, &UnavailableError{Partition: partition, Err: errors.New("location not configured")}
	}

	rc, err := r.open(ctx, location)
	if err != nil {
		return Split{}, &UnavailableError{Partition: partition, Location: location, Err: err}
	}
	defer rc.Close()

	split, err := ReadSplit(rc)
	if err != nil {
		return Split{}, &UnavailableError{Partition: partition, Location: location, Err: err}
	}
	r.logger().Println("loadDataset",
		"partition", partition,
		"location", location,
		"size", split.Len())
	return split, nil
}

// LoadAll reads the three partitions. They are disjoint read-only resources,
// so they are fetched concurrently.
func (r *Repository) LoadAll(ctx context.Context) (Splits, error) {
	g, ctx := errgroup.WithContext(ctx)

	var result Splits
	for _, partition := range Partitions() {
		partition := partition
		var target = result.Get(partition)
		g.Go(func() error {
			var split, err = r.Load(ctx, partition)
			if err != nil {
				return err
			}
			*target = split
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Splits{}, err
	}
	return result, nil
}

func (r *Repository) open(ctx context.Context, location string) (io.ReadCloser, error) {
	if !strings.HasPrefix(location, "http://") && !strings.HasPrefix(location, "https://") {
		return os.Open(location)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, err
	}
	var client = r.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, errors.Errorf("GET %s: %s", location, resp.Status)
	}
	return resp.Body, nil
}

func (r *Repository) logger() *log.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return log.Default()
}
