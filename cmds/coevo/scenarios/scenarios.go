package scenarios

import (
	"fmt"
	"strconv"

	"github.com/mandelsoft/coevolution/pkg/repository"
)

type Options struct {
	// Seed is used by randomized scenarios.
	Seed int64
}

type Scenario struct {
	Index       int
	Name        string
	Description string
	Seeded      bool
	Run         func(repo *repository.Repository, opts Options) error
}

var scenarios = []*Scenario{
	{1, "manual", "Ecosystem with no co-evolution support", false, Manual},
	{2, "coevolution", "Ecosystem with support for model and transformation co-evolution", false, CoEvolution},
	{3, "random", "Random ecosystem with model and transformation co-evolution", true, Random},
}

func List() []*Scenario {
	return append([]*Scenario(nil), scenarios...)
}

// Get finds a scenario by name or index.
func Get(key string) (*Scenario, error) {
	i, err := strconv.Atoi(key)
	for _, s := range scenarios {
		if s.Name == key || (err == nil && s.Index == i) {
			return s, nil
		}
	}
	return nil, fmt.Errorf("unknown scenario %q", key)
}

// Manual stores the microservice ecosystem and changes the
// microservice metamodel afterwards. Nothing reacts on the change,
// all instances and generators keep referring to the old revision.
func Manual(repo *repository.Repository, opts Options) error {
	err := repo.AddArtifacts(ecore, java, microservice, microserviceToSpringBoot, microserviceToDotNet,
		customerMicroservice, shoppingCartMicroservice, orderMicroservice, microserviceToPython)
	if err != nil {
		return err
	}
	return repo.AddArtifact(microservice)
}

// CoEvolution stores the microservice ecosystem together with the
// co-evolution rules. Changing the microservice metamodel migrates
// its instances and generators and regenerates the code.
func CoEvolution(repo *repository.Repository, opts Options) error {
	rules := CoEvolutionRules(repo)
	err := repo.AddArtifacts(ecore, java, trafoMM)
	if err != nil {
		return err
	}
	err = repo.AddArtifacts(rules...)
	if err != nil {
		return err
	}
	err = repo.AddArtifacts(microservice, microserviceToSpringBoot, microserviceToDotNet,
		customerMicroservice, shoppingCartMicroservice, orderMicroservice, microserviceToPython)
	if err != nil {
		return err
	}
	return repo.AddArtifact(microservice)
}
