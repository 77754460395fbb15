package controllers

import (
	"net/http"
	"path"

	"github.com/gin-gonic/gin"

	"feedbackflow/pkg/utils"
)

// StaticController serves the browser frontend from a directory on disk. It is
// mounted as the router's fallback so API routes always win.
type StaticController struct {
	root http.FileSystem
	fs   http.Handler
}

func NewStaticController(dir string) *StaticController {
	root := http.Dir(dir)
	return &StaticController{root: root, fs: http.FileServer(root)}
}

func (s *StaticController) Serve(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		utils.RespondError(c, http.StatusNotFound, "not_found", "Not found")
		return
	}

	name := path.Clean("/" + c.Request.URL.Path)
	if !s.exists(name) {
		utils.RespondError(c, http.StatusNotFound, "not_found", "Not found")
		return
	}

	s.fs.ServeHTTP(c.Writer, c.Request)
}

func (s *StaticController) exists(name string) bool {
	f, err := s.root.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return false
	}
	if !info.IsDir() {
		return true
	}

	index, err := s.root.Open(path.Join(name, "index.html"))
	if err != nil {
		return false
	}
	index.Close()
	return true
}
