package main

import (
	"dagger.io/dagger"

	"ci/pkgs"
)

func main() {
	dagger.ServeCommands(
		Test,
	)
}

func Test(ctx dagger.Context) (string, error) {
	c := ctx.Client()
	return Biome(ctx).
		WithMountedDirectory("/src", c.Host().Directory(".")).
		WithWorkdir("/src").
		WithExec([]string{
			"gotestsum",
			"--format=testname",
			"--no-color=false",
			"./...",
		}, dagger.ContainerWithExecOpts{
			Focus: true,
		}).
		Stdout(ctx)
}

func Biome(ctx dagger.Context) *dagger.Container {
	return pkgs.Wolfi(ctx, []string{
		"go",
		"gotestsum",
	}).
		WithEnvVariable("GOCACHE", "/go/build-cache").
		WithMountedCache("/go/pkg/mod", ctx.Client().CacheVolume("go-mod")).
		WithMountedCache("/go/build-cache", ctx.Client().CacheVolume("go-build"))
}
