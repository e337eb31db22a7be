package navfile

// File is the root of a navigation definitions file:
//
//	groups:
//	  - name: tools
//	    displayName: Tools
//	    priority: 1
//	    children: [editors]
//	links:
//	  - name: vim
//	    displayName: Vim
//	    url: https://www.vim.org
//	    groupName: editors
type File struct {
	Groups []GroupEntry `yaml:"groups"`
	Links  []LinkEntry  `yaml:"links"`
}

// GroupEntry is one group definition.
type GroupEntry struct {
	Name        string   `yaml:"name"`
	DisplayName string   `yaml:"displayName"`
	Priority    *int     `yaml:"priority"`
	Children    []string `yaml:"children"`

	// Navs lists member link names. Deprecated: set groupName on the link.
	Navs []string `yaml:"navs"`
}

// LinkEntry is one link definition.
type LinkEntry struct {
	Name        string `yaml:"name"`
	DisplayName string `yaml:"displayName"`
	URL         string `yaml:"url"`
	Logo        string `yaml:"logo"`
	Description string `yaml:"description"`
	Priority    *int   `yaml:"priority"`
	GroupName   string `yaml:"groupName"`
}
