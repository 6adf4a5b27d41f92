// Package presets ships decode recipes for well-known binary headers so
// bitdump is useful out of the box. Each recipe is a named list of field
// specs in the launcher grammar; they double as living documentation for
// that grammar.
//
// Usage:
//
//	bitdump --preset ipv4-header --in capture.bin
//	bitdump --preset gzip-header --in archive.gz
//
// Recipes describe fixed-layout headers only. Anything with a variable
// layout (optional fields, length-prefixed bodies) needs a hand-written
// field list or a config file.
package presets

import (
	"fmt"
	"sort"
	"strings"
)

// Recipe is one named decode profile.
type Recipe struct {
	Name   string
	Fields []string // field specs, e.g. "length=u16/be/12"
	Offset uint64   // leading bits to skip
	Exact  bool     // reject trailing input
}

// builtin holds every shipped recipe. Keep the field lists bit-exact with the
// format specifications they mirror; the tests decode real sample headers.
var builtin = []Recipe{
	{
		// RFC 1952 member header. The compressed body follows, so Exact stays off.
		Name: "gzip-header",
		Fields: []string{
			"id1=u8",
			"id2=u8",
			"method=u8",
			"flags=u8",
			"mtime=u32/le",
			"xfl=u8",
			"os=u8",
		},
	},
	{
		// 8-byte signature plus the IHDR chunk.
		Name: "png-header",
		Fields: []string{
			"signature=bytes/8",
			"length=u32/be",
			"type=bytes/4",
			"width=u32/be",
			"height=u32/be",
			"depth=u8",
			"color=u8",
			"compression=u8",
			"filter=u8",
			"interlace=u8",
		},
	},
	{
		// RFC 791, fixed 20-byte part. Options when IHL > 5 are left to the caller.
		Name: "ipv4-header",
		Fields: []string{
			"version=u8/4",
			"ihl=u8/4",
			"dscp=u8/6",
			"ecn=u8/2",
			"length=u16/be",
			"id=u16/be",
			"flags=u8/3",
			"fragment=u16/be/13",
			"ttl=u8",
			"protocol=u8",
			"checksum=u16/be",
			"src=bytes/4",
			"dst=bytes/4",
		},
	},
	{
		// RFC 793, fixed 20-byte part without options.
		Name: "tcp-header",
		Fields: []string{
			"src=u16/be",
			"dst=u16/be",
			"seq=u32/be",
			"ack=u32/be",
			"dataoff=u8/4",
			"reserved=u8/3",
			"flags=u16/be/9",
			"window=u16/be",
			"checksum=u16/be",
			"urgent=u16/be",
		},
	},
	{
		// BITMAPFILEHEADER plus the head of BITMAPINFOHEADER. Height may be
		// negative for top-down bitmaps, hence the signed reads.
		Name: "bmp-header",
		Fields: []string{
			"magic=bytes/2",
			"filesize=u32/le",
			"reserved=skip/32",
			"dataoffset=u32/le",
			"headersize=u32/le",
			"width=i32/le",
			"height=i32/le",
			"planes=u16/le",
			"bpp=u16/le",
		},
	},
}

// Builtin returns all shipped recipes sorted by name.
func Builtin() []Recipe {
	out := make([]Recipe, len(builtin))
	copy(out, builtin)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names lists the shipped recipe names sorted alphabetically.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for _, r := range builtin {
		names = append(names, r.Name)
	}
	sort.Strings(names)
	return names
}

// ByName resolves a shipped recipe.
func ByName(name string) (Recipe, error) {
	for _, r := range builtin {
		if r.Name == name {
			return r, nil
		}
	}
	return Recipe{}, fmt.Errorf("unknown preset %q (have: %s)", name, strings.Join(Names(), ", "))
}
