package runner

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

// credentialAllowList extends the minimum safe environment with
// variables developer CLIs commonly need (spec §6). This is a minimum;
// deployments may need to extend it further (§9 open question).
var credentialAllowList = []string{
	"GITHUB_TOKEN", "GH_TOKEN", "GITLAB_TOKEN", "BITBUCKET_TOKEN",
	"AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY", "AWS_SESSION_TOKEN", "AWS_PROFILE", "AWS_REGION",
	"GOOGLE_APPLICATION_CREDENTIALS", "GCLOUD_PROJECT",
	"AZURE_CLIENT_ID", "AZURE_CLIENT_SECRET", "AZURE_TENANT_ID",
	"HTTP_PROXY", "HTTPS_PROXY", "NO_PROXY", "http_proxy", "https_proxy", "no_proxy",
	"XDG_CONFIG_HOME", "XDG_CACHE_HOME", "XDG_DATA_HOME",
}

// windowsSupplementalVars is added on top of the allow-list on Windows
// hosts (spec §6).
var windowsSupplementalVars = []string{
	"SYSTEMROOT", "COMSPEC", "USERPROFILE", "APPDATA", "LOCALAPPDATA", "WINDIR",
}

// buildEnvironment synthesizes the sanitized environment passed to a
// child process: an explicit minimum safe set plus an allow-listed
// pass-through for credential-carrying variables. Anything else in the
// parent's environment is dropped (spec §6).
func buildEnvironment(scratchDir string) []string {
	parent := parentEnvMap()

	env := make([]string, 0, len(credentialAllowList)+8)
	if path, ok := parent["PATH"]; ok {
		env = append(env, "PATH="+path)
	} else {
		env = append(env, "PATH=/usr/local/sbin:/usr/local/bin:/usr/sbin:/usr/bin:/sbin:/bin")
	}
	if home, ok := parent["HOME"]; ok {
		env = append(env, "HOME="+home)
	}
	env = append(env, "TMPDIR="+scratchDir)
	env = append(env, "LANG=en_US.UTF-8")
	env = append(env, "NO_COLOR=1")
	env = append(env, "PYTHONUNBUFFERED=1")
	env = append(env, "PYTHONDONTWRITEBYTECODE=1")

	allowed := credentialAllowList
	if runtime.GOOS == "windows" {
		allowed = append(append([]string{}, credentialAllowList...), windowsSupplementalVars...)
	}
	for _, name := range allowed {
		if v, ok := parent[name]; ok {
			env = append(env, fmt.Sprintf("%s=%s", name, v))
		}
	}
	return env
}

func parentEnvMap() map[string]string {
	out := make(map[string]string, len(os.Environ()))
	for _, kv := range os.Environ() {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) == 2 {
			out[parts[0]] = parts[1]
		}
	}
	return out
}
