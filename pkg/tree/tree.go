// Package tree provides utilities for working with folder trees.
package tree

import "github.com/Innovation-Code-SN/companysphere-go/pkg/models"

// FindByID finds a folder by ID anywhere under the given roots.
func FindByID(roots []*models.Folder, id int64) *models.Folder {
	for _, root := range roots {
		if found := findByID(root, id); found != nil {
			return found
		}
	}
	return nil
}

func findByID(node *models.Folder, id int64) *models.Folder {
	if node == nil {
		return nil
	}
	if node.ID == id {
		return node
	}
	for _, child := range node.SubFolders {
		if found := findByID(child, id); found != nil {
			return found
		}
	}
	return nil
}

// FindDocument finds a document by ID anywhere under the given roots.
func FindDocument(roots []*models.Folder, id int64) *models.Document {
	for _, folder := range Flatten(roots) {
		for i := range folder.Documents {
			if folder.Documents[i].ID == id {
				return &folder.Documents[i]
			}
		}
	}
	return nil
}

// Flatten returns all folders under the given roots, depth-first,
// parents before children.
func Flatten(roots []*models.Folder) []*models.Folder {
	var out []*models.Folder
	for _, root := range roots {
		out = appendSubtree(out, root)
	}
	return out
}

func appendSubtree(out []*models.Folder, node *models.Folder) []*models.Folder {
	if node == nil {
		return out
	}
	out = append(out, node)
	for _, child := range node.SubFolders {
		out = appendSubtree(out, child)
	}
	return out
}

// CountDocuments counts all documents under the given roots,
// sub-folders included.
func CountDocuments(roots []*models.Folder) int {
	count := 0
	for _, folder := range Flatten(roots) {
		count += len(folder.Documents)
	}
	return count
}

// CountFolders counts all folders under the given roots, the roots
// themselves included.
func CountFolders(roots []*models.Folder) int {
	return len(Flatten(roots))
}
