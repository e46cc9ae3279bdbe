package definitions

import (
	"fmt"

	"github.com/uicctools/cardfs"
	"github.com/uicctools/cardfs/filesystem"
	"github.com/uicctools/cardfs/internal/util"
)

// Build inserts the defined nodes under mf. ADF definitions go through the
// MF's application registry regardless of nesting depth, everything else
// becomes a child of its enclosing directory. With ignoreExisting set,
// duplicate fids or names are skipped silently instead of failing.
func Build(mf *filesystem.MF, defs []cardfs.FileDefinition, ignoreExisting bool) error {
	logger := util.GetLogger("definitions.Build")
	n, err := buildInto(mf, &mf.DF, defs, ignoreExisting)
	if err != nil {
		return err
	}
	logger.Debug().Int("nodes", n).Msg("Definitions built")
	return nil
}

func buildInto(mf *filesystem.MF, parent *filesystem.DF, defs []cardfs.FileDefinition, ignoreExisting bool) (int, error) {
	count := 0
	for i := range defs {
		def := &defs[i]
		f, err := construct(def)
		if err != nil {
			return count, err
		}
		count++

		if adf, ok := f.(*filesystem.ADF); ok {
			if err := mf.AddApplication(adf); err != nil {
				return count, err
			}
		} else if err := attach(parent, f, ignoreExisting); err != nil {
			return count, err
		}

		if len(def.Files) > 0 {
			dir, ok := f.(*filesystem.DF)
			if !ok {
				if adf, isApp := f.(*filesystem.ADF); isApp {
					dir = &adf.DF
				} else {
					return count, fmt.Errorf("definition %s: type %q cannot contain files", def.FID, def.Type)
				}
			}
			n, err := buildInto(mf, dir, def.Files, ignoreExisting)
			count += n
			if err != nil {
				return count, err
			}
		}
	}
	return count, nil
}

func attach(parent *filesystem.DF, f filesystem.File, ignoreExisting bool) error {
	if ignoreExisting {
		return parent.AddIgnoreExisting(f)
	}
	return parent.Add(f)
}

// construct builds a single detached node from its definition.
func construct(def *cardfs.FileDefinition) (filesystem.File, error) {
	info := filesystem.Info{
		FID:         def.FID,
		SFID:        def.SFID,
		Name:        def.Name,
		Description: def.Description,
	}

	codec := filesystem.Codec{}
	if def.Codec != "" {
		c, ok := LookupCodec(def.Codec)
		if !ok {
			return nil, fmt.Errorf("definition %s: no codec registered for %q", def.FID, def.Codec)
		}
		codec = c
	}

	switch def.Type {
	case cardfs.DFType:
		return filesystem.NewDF(info)
	case cardfs.ADFType:
		return filesystem.NewADF(def.AID, info)
	case cardfs.TransparentType:
		return filesystem.NewTransparentEF(info, sizeRange(def.Size), codec)
	case cardfs.LinearFixedType:
		return filesystem.NewLinearFixedEF(info, sizeRange(def.RecordLength), codec)
	case cardfs.CyclicType:
		return filesystem.NewCyclicEF(info, sizeRange(def.RecordLength), codec)
	case cardfs.TransRecType:
		return filesystem.NewTransRecEF(info, sizeRange(def.Size), def.RecordSize, codec)
	}
	return nil, fmt.Errorf("definition %s: unknown type %q", def.FID, def.Type)
}

func sizeRange(s *cardfs.SizeDef) filesystem.SizeRange {
	if s == nil {
		return filesystem.SizeRange{Min: 1}
	}
	return filesystem.SizeRange{Min: s.Min, Max: s.Max}
}
