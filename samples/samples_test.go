package samples

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const header = "#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tS1\tS2\tS3"

func TestParseHeader(t *testing.T) {
	names, err := ParseHeader(header)
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 3 || names[0] != "S1" || names[2] != "S3" {
		t.Error("problem reading sample names", names)
	}
	if _, err = ParseHeader("#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFMT\tS1"); !errors.Is(err, ErrHeader) {
		t.Error("expected header error, got", err)
	}
	if _, err = ParseHeader("#CHROM\tPOS"); !errors.Is(err, ErrHeader) {
		t.Error("expected header error for short line, got", err)
	}
}

func TestSelectRemove(t *testing.T) {
	names, _ := ParseHeader(header)
	s, err := Select(names, map[string]bool{"S2": true, "S9": true}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Retained) != 2 || s.Retained[0] != "S1" || s.Retained[1] != "S3" {
		t.Error("problem removing sample", s.Retained)
	}
	if !s.Exclude.Test(1) || s.Exclude.Test(0) || s.Exclude.Test(2) {
		t.Error("wrong exclusion indices")
	}
	if s.HeaderLine() != "#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tS1\tS3" {
		t.Error("problem with header line", s.HeaderLine())
	}
	if s.Parser().Retained() != 2 {
		t.Error("parser does not honor selection")
	}
}

func TestSelectKeep(t *testing.T) {
	names, _ := ParseHeader(header)
	s, err := Select(names, nil, map[string]bool{"S3": true})
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Retained) != 1 || s.Retained[0] != "S3" || s.Exclude.Count() != 2 {
		t.Error("problem keeping sample", s.Retained)
	}
}

func TestSelectErrors(t *testing.T) {
	names, _ := ParseHeader(header)
	if _, err := Select(names, map[string]bool{}, map[string]bool{}); !errors.Is(err, ErrExclusive) {
		t.Error("expected exclusive error, got", err)
	}
	if _, err := Select(nil, nil, nil); !errors.Is(err, ErrNoSamples) {
		t.Error("expected no samples error, got", err)
	}
	if _, err := Select(names, map[string]bool{"S1": true, "S2": true, "S3": true}, nil); !errors.Is(err, ErrNoSamples) {
		t.Error("expected no samples error after removal, got", err)
	}
}

func TestReadList(t *testing.T) {
	file := filepath.Join(t.TempDir(), "remove.txt")
	if err := os.WriteFile(file, []byte("S1\n\nS3\n"), 0644); err != nil {
		t.Fatal(err)
	}
	list := ReadList(file)
	if len(list) != 2 || !list["S1"] || !list["S3"] {
		t.Error("problem reading sample list", list)
	}
}
