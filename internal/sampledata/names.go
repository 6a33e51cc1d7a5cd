package sampledata

var firstNames = []string{
	"Alex", "Bruno", "Carlos", "Dani", "Emil", "Felix", "Gabriel", "Hugo",
	"Ivan", "Jonas", "Kai", "Luca", "Marco", "Nico", "Oscar", "Pablo",
	"Rafael", "Sami", "Theo", "Victor",
}

var lastNames = []string{
	"Almeida", "Berg", "Costa", "Dias", "Eriksen", "Fischer", "Garcia", "Hansen",
	"Ivanov", "Jensen", "Kovac", "Lopez", "Moreau", "Novak", "Okafor", "Petrov",
	"Rossi", "Silva", "Tanaka", "Weber",
}
