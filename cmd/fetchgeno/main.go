// fetchgeno downloads the published MAGIC genotype archive and unpacks the
// per-chromosome happy files (.alleles, .data, .map) into a local directory,
// ready for happy2qtl2.
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
	atmagic "github.com/tavareshugo/atMAGIC"
	_ "github.com/tavareshugo/atMAGIC/compileinfoprint"
	"github.com/tavareshugo/atMAGIC/happy"
)

func main() {
	var url, dir string
	flag.StringVar(&url, "url", atmagic.DefaultArchiveURL, "Genotype archive to fetch: a local path, an http(s):// URL, or a gs:// object")
	flag.StringVar(&dir, "dir", "magic_happy", "Directory to save the archive and unpack the per-chromosome files into")
	flag.Parse()

	url, err := atmagic.ExpandHome(url)
	if err != nil {
		log.Fatalln(err)
	}
	dir, err = atmagic.ExpandHome(dir)
	if err != nil {
		log.Fatalln(err)
	}

	if err := run(url, dir); err != nil {
		log.Fatalln(err)
	}
}

func run(url, dir string) error {
	var client *storage.Client
	if strings.HasPrefix(url, "gs://") {
		var err error
		if client, err = storage.NewClient(context.Background()); err != nil {
			return pfx.Err(err)
		}
	}

	rc, size, err := atmagic.Open(url, client)
	if err != nil {
		return err
	}
	defer rc.Close()

	if size > 0 {
		log.Printf("Fetching %s (%.1f MB)", url, float64(size)/(1<<20))
	} else {
		log.Printf("Fetching %s", url)
	}

	// The archive itself is kept in the working directory, so a failed or
	// suspect run can be inspected without fetching again.
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return pfx.Err(err)
	}
	archive := filepath.Join(dir, archiveName(url))
	out, err := os.Create(archive)
	if err != nil {
		return pfx.Err(err)
	}
	n, err := io.Copy(out, rc)
	if err != nil {
		out.Close()
		return pfx.Err(err)
	}
	if err := out.Close(); err != nil {
		return pfx.Err(err)
	}
	log.Printf("Saved %s (%.1f MB)", archive, float64(n)/(1<<20))

	f, err := os.Open(archive)
	if err != nil {
		return pfx.Err(err)
	}
	defer f.Close()

	files, err := atmagic.ExtractArchive(f, dir)
	if err != nil {
		return err
	}
	log.Printf("Unpacked %d files into %s", len(files), dir)

	sets, err := happy.DiscoverSets(dir)
	if err != nil {
		return err
	}
	for _, set := range sets {
		log.Printf("Chromosome %d: %s", set.Chr, set.Stem)
	}
	log.Printf("Found %d chromosome file sets", len(sets))

	return nil
}

// archiveName picks a local file name for the fetched archive from the last
// element of its source, with any URL query stripped.
func archiveName(url string) string {
	base := url
	if i := strings.IndexAny(base, "?#"); i >= 0 {
		base = base[:i]
	}
	base = path.Base(strings.TrimSuffix(base, "/"))
	if base == "." || base == "/" || base == "" {
		return "genotypes.archive"
	}

	return base
}
