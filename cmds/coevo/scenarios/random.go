package scenarios

import (
	"math/rand"

	"github.com/goombaio/namegenerator"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/mandelsoft/coevolution/pkg/artifact"
	"github.com/mandelsoft/coevolution/pkg/repository"
)

type names struct {
	generator namegenerator.Generator
	used      sets.Set[string]
}

func newNames(seed int64) *names {
	return &names{
		generator: namegenerator.NewNameGenerator(seed),
		used:      sets.New[string](),
	}
}

func (n *names) next() string {
	for {
		name := n.generator.Generate()
		if !n.used.Has(name) {
			n.used.Insert(name)
			return name
		}
	}
}

// Random creates an ecosystem of randomly named metamodels with
// generators and instances, using the co-evolution rules. Afterwards
// randomly chosen metamodels are changed. The same seed always
// provides the same ecosystem.
func Random(repo *repository.Repository, opts Options) error {
	r := rand.New(rand.NewSource(opts.Seed))
	gen := newNames(opts.Seed)

	err := repo.AddArtifacts(ecore, java, trafoMM)
	if err != nil {
		return err
	}
	err = repo.AddArtifacts(CoEvolutionRules(repo)...)
	if err != nil {
		return err
	}

	var metamodels []artifact.Artifact
	for i := 2 + r.Intn(3); i > 0; i-- {
		mm := artifact.NewPlain(gen.next()).WithMetamodel(Ecore).MustBuild()
		metamodels = append(metamodels, mm)

		list := []artifact.Artifact{mm}
		for j := 1 + r.Intn(2); j > 0; j-- {
			name := gen.next()
			list = append(list, Generator(name, mm.GetVersion(), "-"+name))
		}
		for j := 1 + r.Intn(4); j > 0; j-- {
			list = append(list, artifact.NewPlain(gen.next()).WithMetamodel(mm.GetVersion()).MustBuild())
		}
		log.Debug("creating metamodel {{metamodel}} with {{count}} artifacts", "metamodel", mm.GetVersion(), "count", len(list)-1)
		err = repo.AddArtifacts(list...)
		if err != nil {
			return err
		}
	}

	for i := 1 + r.Intn(3); i > 0; i-- {
		mm := metamodels[r.Intn(len(metamodels))]
		log.Info("changing metamodel {{metamodel}}", "metamodel", mm.GetVersion().Name)
		err = repo.AddArtifact(mm)
		if err != nil {
			return err
		}
	}
	return nil
}
