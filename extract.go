package atmagic

import (
	"archive/tar"
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/carbocation/pfx"
	"github.com/krolaw/zipstream"
)

// ExtractArchive unpacks every regular file in the archive behind r into
// destDir, flattening any directory structure (the per-chromosome genotype
// files are all that matters, wherever the packer nested them). Two members
// that flatten to the same name are an error. Zip and (optionally
// compressed) tar archives are recognized. Returns the paths written, in
// archive order.
func ExtractArchive(r io.Reader, destDir string) ([]string, error) {
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, pfx.Err(err)
	}

	br := bufio.NewReader(r)
	dt, err := DetectDataType(br)
	if err != nil {
		return nil, pfx.Err(err)
	}

	if dt == DataTypeZip {
		return extractZip(br, destDir)
	}

	inner, _, err := MaybeDecompress(br)
	if err != nil {
		return nil, pfx.Err(err)
	}

	ibr := bufio.NewReader(inner)
	idt, err := DetectDataType(ibr)
	if err != nil {
		return nil, pfx.Err(err)
	}
	if idt != DataTypeTar {
		return nil, fmt.Errorf("archive layout not recognized: outer type %d, inner type %d (expected zip, tar, or compressed tar)", dt, idt)
	}

	return extractTar(ibr, destDir)
}

func extractZip(r io.Reader, destDir string) ([]string, error) {
	var written []string
	seen := make(map[string]bool)

	zr := zipstream.NewReader(r)
	for {
		hdr, err := zr.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			return written, pfx.Err(err)
		}

		if hdr.FileInfo().IsDir() {
			continue
		}

		path, err := writeMember(destDir, hdr.Name, seen, zr)
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}

	return written, nil
}

func extractTar(r io.Reader, destDir string) ([]string, error) {
	var written []string
	seen := make(map[string]bool)

	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			return written, pfx.Err(err)
		}

		if hdr.Typeflag != tar.TypeReg {
			continue
		}

		path, err := writeMember(destDir, hdr.Name, seen, tr)
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}

	return written, nil
}

func writeMember(destDir, name string, seen map[string]bool, r io.Reader) (string, error) {
	base := filepath.Base(filepath.FromSlash(name))
	if base == "." || base == string(filepath.Separator) {
		return "", fmt.Errorf("archive member %q has no usable file name", name)
	}
	if seen[base] {
		return "", fmt.Errorf("archive member %q flattens to %s, which an earlier member already wrote", name, base)
	}
	seen[base] = true

	path := filepath.Join(destDir, base)
	out, err := os.Create(path)
	if err != nil {
		return "", pfx.Err(err)
	}

	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return "", pfx.Err(fmt.Errorf("extracting %s: %w", name, err))
	}

	return path, out.Close()
}
