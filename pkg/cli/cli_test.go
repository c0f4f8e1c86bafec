package cli_test

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/vulntrend/pkg/cli"
	"github.com/secmon-lab/vulntrend/pkg/utils/logging"
	"github.com/secmon-lab/vulntrend/pkg/utils/testutil"
)

func TestRunAnalyze(t *testing.T) {
	t.Run("runs the pipeline end to end", func(t *testing.T) {
		csvDir := t.TempDir()
		figDir := t.TempDir()
		testutil.WriteCSVFile(t, csvDir, "resultados_t0.csv",
			"timepoint,image,tag,repo,image_ref,size_mb,cv_critical,cv_high,density,trivy_version,scan_utc,trivy_db_updated_at\n"+
				"t0,app,v1,r,registry/app:v1,100,2,3,0.05,0.1,2024-01-01T00:00:00Z,\n")

		err := cli.New().Run([]string{"vulntrend", "analyze", "--csv-dir", csvDir, "--fig-dir", figDir})
		gt.NoError(t, err)

		for _, name := range []string{"merged_all.csv", "comparativa.csv", "analysis_provenance.json"} {
			_, err := os.Stat(filepath.Join(csvDir, name))
			gt.NoError(t, err)
		}
	})

	t.Run("fails when no input file exists", func(t *testing.T) {
		err := cli.New().Run([]string{"vulntrend", "analyze", "--csv-dir", t.TempDir(), "--fig-dir", t.TempDir()})
		gt.Error(t, err)
	})
}

func TestFatalErrorStream(t *testing.T) {
	orig := os.Stderr
	r, w, perr := os.Pipe()
	gt.NoError(t, perr)
	os.Stderr = w
	defer func() {
		os.Stderr = orig
		_ = logging.Configure("text", "info", "stderr")
	}()

	// default log-output resolves to stderr, so the fatal log must land there
	err := cli.New().Run([]string{"vulntrend", "analyze", "--csv-dir", t.TempDir(), "--fig-dir", t.TempDir()})

	gt.NoError(t, w.Close())
	out, rerr := io.ReadAll(r)
	gt.NoError(t, rerr)

	gt.Error(t, err)
	gt.True(t, strings.Contains(string(out), "fatal error"))
}
