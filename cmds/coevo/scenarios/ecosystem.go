package scenarios

import (
	"github.com/mandelsoft/coevolution/pkg/artifact"
	"github.com/mandelsoft/coevolution/pkg/coevolution"
	"github.com/mandelsoft/coevolution/pkg/repository"
	"github.com/mandelsoft/coevolution/pkg/version"
)

var (
	Ecore        = version.New("ecore")
	TrafoMM      = version.New("trafoMM")
	Java         = version.New("java")
	CoEvM        = version.New("coEvM")
	Microservice = version.New("microservice")
)

// the microservice ecosystem shared by the canned scenarios.
var (
	ecore                    = artifact.NewPlain(Ecore.Name).MustBuild()
	trafoMM                  = artifact.NewPlain(TrafoMM.Name).MustBuild()
	java                     = artifact.NewPlain(Java.Name).MustBuild()
	microservice             = artifact.NewPlain(Microservice.Name).WithMetamodel(Ecore).MustBuild()
	customerMicroservice     = artifact.NewPlain("customerMicroservice").WithMetamodel(Microservice).MustBuild()
	shoppingCartMicroservice = artifact.NewPlain("shoppingCartMicroservice").WithMetamodel(Microservice).MustBuild()
	orderMicroservice        = artifact.NewPlain("orderMicroservice").WithMetamodel(Microservice).MustBuild()
	microserviceToSpringBoot = Generator("microserviceToSpringBoot", Microservice, "SpringBootGen")
	microserviceToDotNet     = Generator("microserviceToDotNet", Microservice, "DotNetGen")
	microserviceToPython     = Generator("microserviceToPython", Microservice, "PythonGen")
)

// Generator provides a code generator transformation for instances of the
// given metamodel. The generated artifacts conform to the java metamodel.
func Generator(name string, metamodel version.Version, suffix string) artifact.Artifact {
	return artifact.NewTransformation(name).
		WithMetamodel(TrafoMM).
		WithDependency(metamodel).
		WithMapping(coevolution.CodeGenerator(suffix, Java)).
		MustBuild()
}

// CoEvolutionRules provides the transformations creating co-evolution models
// for changed metamodels and deriving model and transformation migrations
// from them.
func CoEvolutionRules(repo *repository.Repository) []artifact.Artifact {
	return []artifact.Artifact{
		artifact.NewTransformation("coEvModelGen").
			WithDependency(Ecore).
			WithMapping(coevolution.CoEvolutionModelGenerator(CoEvM)).
			MustBuild(),
		artifact.NewTransformation("modelCoEvGen").
			WithDependency(CoEvM).
			WithMapping(coevolution.ModelMigrationGenerator(repo)).
			MustBuild(),
		artifact.NewTransformation("transCoEvGen").
			WithDependency(CoEvM).
			WithMapping(coevolution.TransformationMigrationGenerator(TrafoMM)).
			MustBuild(),
	}
}
