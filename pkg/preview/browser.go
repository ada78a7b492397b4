package preview

import (
	"fmt"
	"os/exec"
	"runtime"
)

// OpenExternal 用系统默认浏览器打开链接（Fallback 状态的 "Open Video"）
func OpenExternal(url string) error {
	if url == "" {
		return fmt.Errorf("open external: empty url")
	}
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}
