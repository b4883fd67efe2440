package repository_test

import (
	"errors"
	"fmt"

	. "github.com/mandelsoft/coevolution/pkg/testutils"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/mandelsoft/coevolution/pkg/artifact"
	me "github.com/mandelsoft/coevolution/pkg/repository"
	"github.com/mandelsoft/coevolution/pkg/version"
)

var _ = Describe("propagation", func() {
	var repo *me.Repository
	var rec *recorder

	BeforeEach(func() {
		rec = &recorder{}
		repo = me.New(me.WithHandler(rec))
	})

	It("generates code for a new instance", func() {
		cnt := 0
		gen := artifact.NewTransformation("gen").WithDependency(ecore).WithMapping(func(in artifact.Artifact) (artifact.Artifact, error) {
			cnt++
			return artifact.NewPlain("X").WithMetamodel(java).Build()
		}).MustBuild()

		MustBeSuccessful(repo.AddArtifact(artifact.NewPlain("ecore").MustBuild()))
		MustBeSuccessful(repo.AddArtifact(gen))
		Expect(cnt).To(Equal(0))

		MustBeSuccessful(repo.AddArtifact(artifact.NewPlain("model").WithMetamodel(ecore).MustBuild()))
		Expect(cnt).To(Equal(1))
		Expect(repo.ContainsByVersion(version.New("X"))).To(BeTrue())
		Expect(repo.Versions("X")).To(Equal([]version.Version{version.New("X")}))
		Expect(names(repo.GetInstances(java))).To(Equal([]string{"X@0"}))
		Expect(repo.Len()).To(Equal(4))
	})

	It("runs a new transformation for existing instances", func() {
		m := version.New("microservice")
		MustBeSuccessful(repo.AddArtifacts(
			artifact.NewPlain("customer").WithMetamodel(m).MustBuild(),
			artifact.NewPlain("order").WithMetamodel(m).MustBuild(),
			artifact.NewPlain("other").WithMetamodel(ecore).MustBuild(),
		))
		cnt := 0
		MustBeSuccessful(repo.AddArtifact(artifact.NewTransformation("toJava").WithDependency(m).WithMapping(generate("Java", java, &cnt)).MustBuild()))
		Expect(cnt).To(Equal(2))
		Expect(names(repo.GetInstances(java))).To(Equal([]string{"customerJava@0", "orderJava@0"}))
	})

	It("ignores non-applicable results", func() {
		cnt := 0
		t := artifact.NewTransformation("none").WithDependency(ecore).WithMapping(func(in artifact.Artifact) (artifact.Artifact, error) {
			cnt++
			if cnt == 1 {
				return nil, nil
			}
			var p *artifact.Plain
			return p, nil
		}).MustBuild()
		MustBeSuccessful(repo.AddArtifacts(t,
			artifact.NewPlain("a").WithMetamodel(ecore).MustBuild(),
			artifact.NewPlain("b").WithMetamodel(ecore).MustBuild(),
		))
		Expect(cnt).To(Equal(2))
		Expect(repo.Len()).To(Equal(3))
	})

	It("does not run transformations for their own dependencies", func() {
		cnt := 0
		t := artifact.NewTransformation("gen").WithDependency(ecore).WithMapping(generate("Gen", java, &cnt)).MustBuild()
		MustBeSuccessful(repo.AddArtifacts(artifact.NewPlain("ecore").MustBuild(), t))
		Expect(cnt).To(Equal(0))
	})

	It("is independent of the insertion order of transformation and instance", func() {
		cnt1, cnt2 := 0, 0
		other := me.New()
		inst := artifact.NewPlain("model").WithMetamodel(ecore).MustBuild()

		MustBeSuccessful(repo.AddArtifacts(inst, artifact.NewTransformation("gen").WithDependency(ecore).WithMapping(generate("Gen", java, &cnt1)).MustBuild()))
		MustBeSuccessful(other.AddArtifacts(artifact.NewTransformation("gen").WithDependency(ecore).WithMapping(generate("Gen", java, &cnt2)).MustBuild(), inst))

		Expect(cnt1).To(Equal(1))
		Expect(cnt2).To(Equal(1))
		Expect(repo.Snapshot()).To(ConsistOf(other.Snapshot()))
	})

	It("cascades depth first", func() {
		a := version.New("A")
		b := version.New("B")
		MustBeSuccessful(repo.AddArtifacts(
			artifact.NewTransformation("a2b").WithDependency(a).WithMapping(generate("-b", b, nil)).MustBuild(),
			artifact.NewTransformation("b2c").WithDependency(b).WithMapping(generate("-c", version.New("C"), nil)).MustBuild(),
		))
		rec.events = nil
		MustBeSuccessful(repo.AddArtifacts(
			artifact.NewPlain("x").WithMetamodel(a).MustBuild(),
			artifact.NewPlain("y").WithMetamodel(a).MustBuild(),
		))
		Expect(historyNames(rec.events)).To(Equal([]string{"x@0", "x-b@0", "x-b-c@0", "y@0", "y-b@0", "y-b-c@0"}))

		Expect(rec.events[0].Depth).To(Equal(0))
		Expect(rec.events[1].Depth).To(Equal(1))
		Expect(rec.events[2].Depth).To(Equal(2))
		Expect(rec.events[0].Cause).To(BeNil())
		Expect(*rec.events[2].Cause).To(Equal(version.New("b2c")))
		Expect(*rec.events[1].Cause).To(Equal(version.New("a2b")))
		Expect(rec.events[0].IsDerived()).To(BeFalse())
		Expect(rec.events[2].IsDerived()).To(BeTrue())

		Expect(rec.events[1].RunId).To(Equal(rec.events[0].RunId))
		Expect(rec.events[2].RunId).To(Equal(rec.events[0].RunId))
		Expect(rec.events[3].RunId).NotTo(Equal(rec.events[0].RunId))
	})

	It("re-keys generated artifacts", func() {
		m := version.New("microservice")
		MustBeSuccessful(repo.AddArtifacts(
			artifact.NewPlain("customer").WithMetamodel(m).MustBuild(),
			artifact.NewTransformation("toJava").WithDependency(m).WithMapping(generate("Java", java, nil)).MustBuild(),
			artifact.NewPlain("customer").WithMetamodel(m).MustBuild(),
		))
		Expect(repo.Versions("customerJava")).To(Equal([]version.Version{version.New("customerJava"), version.New("customerJava", 1)}))
	})

	It("lets later batch elements see earlier effects only", func() {
		var seen []int
		m := version.New("microservice")
		probe := artifact.NewTransformation("probe").WithDependency(m).WithMapping(func(in artifact.Artifact) (artifact.Artifact, error) {
			seen = append(seen, len(repo.GetInstances(m)))
			return nil, nil
		}).MustBuild()
		MustBeSuccessful(repo.AddArtifacts(
			probe,
			artifact.NewPlain("a").WithMetamodel(m).MustBuild(),
			artifact.NewPlain("b").WithMetamodel(m).MustBuild(),
			artifact.NewPlain("c").WithMetamodel(m).MustBuild(),
		))
		Expect(seen).To(Equal([]int{1, 2, 3}))
	})

	It("joins the active cascade for insertions from mapping functions", func() {
		var t artifact.Artifact
		t = artifact.NewTransformation("side").WithDependency(ecore).WithMapping(func(in artifact.Artifact) (artifact.Artifact, error) {
			err := repo.AddArtifact(artifact.NewPlain(in.GetVersion().Name + "-side").MustBuild())
			return nil, err
		}).MustBuild()
		MustBeSuccessful(repo.AddArtifacts(t, artifact.NewPlain("m").WithMetamodel(ecore).MustBuild()))
		h := repo.History()
		Expect(historyNames(h)).To(Equal([]string{"side@0", "m@0", "m-side@0"}))
		Expect(h[2].RunId).To(Equal(h[1].RunId))
		Expect(h[2].Depth).To(Equal(1))
		Expect(*h[2].Cause).To(Equal(version.New("side")))
	})

	It("keeps the level of the calling mapping for joined insertions", func() {
		b := version.New("B")
		MustBeSuccessful(repo.AddArtifacts(
			artifact.NewTransformation("chain").WithDependency(ecore).WithMapping(generate("-b", b, nil)).MustBuild(),
			artifact.NewTransformation("b2c").WithDependency(b).WithMapping(generate("-c", version.New("C"), nil)).MustBuild(),
			artifact.NewTransformation("side").WithDependency(ecore).WithMapping(func(in artifact.Artifact) (artifact.Artifact, error) {
				err := repo.AddArtifact(artifact.NewPlain(in.GetVersion().Name + "-side").MustBuild())
				return nil, err
			}).MustBuild(),
		))
		rec.events = nil
		MustBeSuccessful(repo.AddArtifact(artifact.NewPlain("m").WithMetamodel(ecore).MustBuild()))

		Expect(historyNames(rec.events)).To(Equal([]string{"m@0", "m-b@0", "m-b-c@0", "m-side@0"}))
		Expect(rec.events[2].Depth).To(Equal(2))
		Expect(rec.events[3].Depth).To(Equal(1))
		Expect(*rec.events[3].Cause).To(Equal(version.New("side")))
	})

	Context("failures", func() {
		It("propagates mapping errors", func() {
			t := artifact.NewTransformation("previous").WithDependency(ecore).WithMapping(func(in artifact.Artifact) (artifact.Artifact, error) {
				p, err := in.GetVersion().Decrement()
				if err != nil {
					return nil, err
				}
				return artifact.NewPlain(p.Name + "-previous").Build()
			}).MustBuild()
			MustBeSuccessful(repo.AddArtifact(t))

			err := repo.AddArtifact(artifact.NewPlain("m").WithMetamodel(ecore).MustBuild())
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, version.ErrInitialVersion)).To(BeTrue())

			var merr *me.MappingError
			Expect(errors.As(err, &merr)).To(BeTrue())
			Expect(merr.Transformation).To(Equal(version.New("previous")))
			Expect(merr.Input).To(Equal(version.New("m")))
			Expect(err.Error()).To(Equal("transformation previous@0 failed for m@0: cannot decrement m@0: no previous version for initial version"))

			Expect(repo.ContainsByVersion(version.New("m"))).To(BeTrue())

			MustBeSuccessful(repo.AddArtifact(artifact.NewPlain("m").WithMetamodel(ecore).MustBuild()))
			Expect(repo.ContainsByVersion(version.New("m-previous"))).To(BeTrue())
		})

		It("stops a batch at the first failure", func() {
			t := artifact.NewTransformation("fail").WithDependency(ecore).WithMapping(func(in artifact.Artifact) (artifact.Artifact, error) {
				return nil, fmt.Errorf("failed")
			}).MustBuild()
			err := repo.AddArtifacts(t,
				artifact.NewPlain("a").WithMetamodel(ecore).MustBuild(),
				artifact.NewPlain("b").WithMetamodel(ecore).MustBuild(),
			)
			Expect(err).To(MatchError(ContainSubstring("failed")))
			Expect(names(repo.List())).To(Equal([]string{"fail@0", "a@0"}))
		})
	})

	Context("termination", func() {
		var microservice, microservice1 version.Version
		var migrate artifact.Artifact
		var cnt int

		BeforeEach(func() {
			cnt = 0
			microservice = version.New("microservice")
			microservice1 = microservice.Increment()
			// migrates transformations depending on the previous microservice revision.
			// Its results are again instances of trafoMM and trigger it again.
			migrate = artifact.NewTransformation("migrate").WithDependency(trafoMM).WithMapping(func(in artifact.Artifact) (artifact.Artifact, error) {
				cnt++
				t, ok := in.AsTransformation()
				if !ok || !t.HasDependency(microservice) {
					return nil, nil
				}
				return artifact.Evolve(t).UpdateDependency(microservice1).Build()
			}).MustBuild()
		})

		It("does not re-fire on its own migrated output", func() {
			repo = me.New(me.WithMaxCascadeDepth(10))
			gen := artifact.NewTransformation("gen").WithMetamodel(trafoMM).WithDependency(microservice).WithMapping(generate("Gen", java, nil)).MustBuild()
			MustBeSuccessful(repo.AddArtifacts(gen, migrate))

			Expect(repo.Versions("gen")).To(Equal([]version.Version{version.New("gen"), version.New("gen", 1)}))
			migrated := Must2Ok(repo.GetByVersion(version.New("gen", 1)))
			Expect(migrated.GetDependencies()).To(Equal(sets.New(microservice1)))
			Expect(migrated.GetMetamodels()).To(Equal(sets.New(trafoMM)))
			// once for gen@0 and once for the migrated gen@1
			Expect(cnt).To(Equal(2))
		})

		It("limits unguarded cascades if requested", func() {
			repo = me.New(me.WithMaxCascadeDepth(5))
			loop := artifact.NewTransformation("loop").WithDependency(ecore).WithMapping(func(in artifact.Artifact) (artifact.Artifact, error) {
				return artifact.Evolve(in).Build()
			}).MustBuild()
			err := repo.AddArtifacts(loop, artifact.NewPlain("m").WithMetamodel(ecore).MustBuild())
			Expect(errors.Is(err, me.ErrCascadeDepthExceeded)).To(BeTrue())
			Expect(repo.Versions("m")).To(HaveLen(6))
		})
	})
})
