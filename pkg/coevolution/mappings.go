// Package coevolution provides mapping functions for typical
// co-evolution rules. They are caller level policies, the repository
// itself does not depend on them.
//
// All mappings guard themselves against being triggered by their
// own results.
package coevolution

import (
	"github.com/mandelsoft/coevolution/pkg/artifact"
	"github.com/mandelsoft/coevolution/pkg/version"
)

// Lookup is the part of a repository required by migrations.
type Lookup interface {
	ContainsByVersion(v version.Version) bool
}

// CodeGenerator generates an artifact <input name><suffix> conforming
// to the given target metamodel for every input.
func CodeGenerator(suffix string, target version.Version) artifact.Mapping {
	return func(in artifact.Artifact) (artifact.Artifact, error) {
		log.Debug("generating {{suffix}} for model {{model}}", "suffix", suffix, "model", in.GetVersion())
		return artifact.NewPlain(in.GetVersion().Name + suffix).WithMetamodel(target).Build()
	}
}

// CoEvolutionModelGenerator records the change of every non-initial
// input revision by a co-evolution model <input name>-coEvM
// conforming to the given metamodel.
func CoEvolutionModelGenerator(coEvM version.Version) artifact.Mapping {
	return func(in artifact.Artifact) (artifact.Artifact, error) {
		v := in.GetVersion()
		if v.IsInitial() {
			log.Debug("no migration model for initial version of {{model}}", "model", v)
			return nil, nil
		}
		log.Info("creating migration model for {{model}}", "model", v)
		return artifact.NewCoEvolutionModel(v.Name + "-coEvM").
			WithMetamodel(coEvM).
			WithChangedArtifact(v).
			Build()
	}
}

// ModelMigrationGenerator creates a model migration for every co-evolution
// model. The migration depends on the previous revision of the changed
// artifact and moves its instances to the changed revision. It fails
// with a *DanglingMetamodelError if the changed revision is not stored.
func ModelMigrationGenerator(repo Lookup) artifact.Mapping {
	return func(in artifact.Artifact) (artifact.Artifact, error) {
		c, ok := in.AsCoEvolutionModel()
		if !ok {
			return nil, nil
		}
		changed := c.GetChangedArtifact()
		previous, err := changed.Decrement()
		if err != nil {
			return nil, err
		}
		log.Info("creating model migration for {{changed}}", "changed", changed)
		return artifact.NewTransformation(changed.Name + "-model-migration").
			WithDependency(previous).
			WithMapping(migrateModel(repo, previous, changed)).
			Build()
	}
}

func migrateModel(repo Lookup, previous, changed version.Version) artifact.Mapping {
	return func(in artifact.Artifact) (artifact.Artifact, error) {
		if !in.HasMetamodel(previous) {
			return nil, nil
		}
		if !repo.ContainsByVersion(changed) {
			return nil, &DanglingMetamodelError{Artifact: in.GetVersion(), Metamodel: changed}
		}
		migrated, err := artifact.Evolve(in).UpdateMetamodel(changed).Build()
		if err != nil {
			return nil, err
		}
		log.Info("migrating model {{model}} to {{metamodel}}", "model", in.GetVersion(), "metamodel", changed)
		return migrated, nil
	}
}

// TransformationMigrationGenerator creates a transformation migration for
// every co-evolution model. The migration is triggered for all
// transformations conforming to the given transformation metamodel and
// replaces a dependency on the previous revision of the changed artifact
// by the changed revision.
func TransformationMigrationGenerator(trafoMM version.Version) artifact.Mapping {
	return func(in artifact.Artifact) (artifact.Artifact, error) {
		c, ok := in.AsCoEvolutionModel()
		if !ok {
			return nil, nil
		}
		changed := c.GetChangedArtifact()
		previous, err := changed.Decrement()
		if err != nil {
			return nil, err
		}
		log.Info("creating transformation migration for {{changed}}", "changed", changed)
		return artifact.NewTransformation(changed.Name + "-transformation-migration").
			WithDependency(trafoMM).
			WithMapping(migrateTransformation(previous, changed)).
			Build()
	}
}

func migrateTransformation(previous, changed version.Version) artifact.Mapping {
	return func(in artifact.Artifact) (artifact.Artifact, error) {
		t, ok := in.AsTransformation()
		if !ok || !t.HasDependency(previous) {
			return nil, nil
		}
		log.Info("migrating transformation {{transformation}}", "transformation", t.GetVersion())
		return artifact.Evolve(t).UpdateDependency(changed).Build()
	}
}
