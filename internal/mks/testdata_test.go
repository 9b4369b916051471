package mks

import (
	"fmt"
	"strings"
)

type fixtureMember struct {
	name  string
	delta string
	stamp string
}

func sandboxXML(members ...fixtureMember) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<Response command="viewsandbox" app="si" version="4.10.0">` + "\n")
	b.WriteString(`  <WorkItems selectionType="ISandboxSelection">` + "\n")
	for _, m := range members {
		fmt.Fprintf(&b, `    <WorkItem id="%s" parentID="/sandbox/project.pj" modelType="si.Member">`+"\n", m.name)
		fmt.Fprintf(&b, `      <Field name="wfdelta"><Item id="%s" modelType="si.WorkingFileDelta"><Field name="type"><Value dataType="string">%s</Value></Field></Item></Field>`+"\n", m.delta, m.delta)
		fmt.Fprintf(&b, `      <Field name="name"><Value dataType="string">%s</Value></Field>`+"\n", m.name)
		if m.stamp != "" {
			fmt.Fprintf(&b, `      <Field name="workingtimestamp"><Value dataType="datetime">%s</Value></Field>`+"\n", m.stamp)
		}
		b.WriteString("    </WorkItem>\n")
	}
	b.WriteString("  </WorkItems>\n</Response>\n")
	return b.String()
}

func memberInfoXML(author, description, date, revision string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<Response command="memberinfo" app="si" version="4.10.0">
  <WorkItems selectionType="IRevisionSelection">
    <WorkItem id="member" modelType="si.Revision">
      <Field name="description"><Value dataType="string">%s</Value></Field>
      <Field name="date"><Value dataType="datetime">%s</Value></Field>
      <Field name="author"><Value dataType="string">%s</Value></Field>
      <Field name="memberrev"><Item id="%s" modelType="si.Revision"/></Field>
    </WorkItem>
  </WorkItems>
</Response>
`, description, date, author, revision)
}

func testSettings(root string) Settings {
	s := DefaultSettings()
	s.User = "builder"
	s.Password = "secret"
	s.SandboxRoot = root
	s.SandboxFile = "project.pj"
	return s
}
