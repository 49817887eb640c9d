// Package project provides the project descriptor that drives code generation
// and the starter layout created by "cppgen init".
//
// # Descriptor
//
// A descriptor (project.json by default, YAML is accepted too) lists the
// files to generate together with their namespaces, classes, free functions
// and globals:
//
//	{
//	  "name": "demo",
//	  "version": "1.0.0",
//	  "variables": {"NS": "demo"},
//	  "common_includes": ["<string>"],
//	  "code_templates": {"banner": "// ${PROJECT_NAME} ${PROJECT_VERSION}"},
//	  "files": [
//	    {
//	      "filename": "widget.h",
//	      "type": "header",
//	      "namespaces": ["${NS}"],
//	      "classes": [{"name": "Widget", "base_classes": ["public Base"]}]
//	    }
//	  ]
//	}
//
// Variables may be used anywhere in the descriptor; they are substituted in
// the raw text before the descriptor is decoded a second time. Functions are
// public and members private unless they say otherwise, and parameters
// without both a type and a name are dropped.
//
// # Project Structure
//
// Initialize creates the following layout, skipping anything that exists:
//
//	project-root/
//	├── cppgen.yaml             # Tool configuration
//	├── project.json            # Project descriptor
//	└── lib/
//	    └── core/
//	        └── greeting.inc    # Example library component
//
// # Usage Example
//
//	proj := project.New("/path/to/my/project")
//	if err := proj.Initialize(); err != nil {
//		log.Fatal("Failed to initialize project:", err)
//	}
//
//	d, err := proj.LoadDescriptor("")
//	if err != nil {
//		log.Fatal("Failed to load descriptor:", err)
//	}
//
//	for _, f := range d.Files {
//		fmt.Println(f.Filename, f.FileType())
//	}
package project
