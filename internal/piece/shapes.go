package piece

type o = Offset

var shapes = [Count][4]Shape{
	I: {
		{o{0, 1}, o{1, 1}, o{2, 1}, o{3, 1}},
		{o{2, 0}, o{2, 1}, o{2, 2}, o{2, 3}},
		{o{0, 2}, o{1, 2}, o{2, 2}, o{3, 2}},
		{o{1, 0}, o{1, 1}, o{1, 2}, o{1, 3}},
	},
	O: {
		{o{1, 0}, o{2, 0}, o{1, 1}, o{2, 1}},
		{o{1, 0}, o{2, 0}, o{1, 1}, o{2, 1}},
		{o{1, 0}, o{2, 0}, o{1, 1}, o{2, 1}},
		{o{1, 0}, o{2, 0}, o{1, 1}, o{2, 1}},
	},
	T: {
		{o{1, 0}, o{0, 1}, o{1, 1}, o{2, 1}},
		{o{1, 0}, o{1, 1}, o{2, 1}, o{1, 2}},
		{o{0, 1}, o{1, 1}, o{2, 1}, o{1, 2}},
		{o{1, 0}, o{0, 1}, o{1, 1}, o{1, 2}},
	},
	S: {
		{o{1, 0}, o{2, 0}, o{0, 1}, o{1, 1}},
		{o{1, 0}, o{1, 1}, o{2, 1}, o{2, 2}},
		{o{1, 1}, o{2, 1}, o{0, 2}, o{1, 2}},
		{o{0, 0}, o{0, 1}, o{1, 1}, o{1, 2}},
	},
	Z: {
		{o{0, 0}, o{1, 0}, o{1, 1}, o{2, 1}},
		{o{2, 0}, o{1, 1}, o{2, 1}, o{1, 2}},
		{o{0, 1}, o{1, 1}, o{1, 2}, o{2, 2}},
		{o{1, 0}, o{0, 1}, o{1, 1}, o{0, 2}},
	},
	J: {
		{o{0, 0}, o{0, 1}, o{1, 1}, o{2, 1}},
		{o{1, 0}, o{2, 0}, o{1, 1}, o{1, 2}},
		{o{0, 1}, o{1, 1}, o{2, 1}, o{2, 2}},
		{o{1, 0}, o{1, 1}, o{0, 2}, o{1, 2}},
	},
	L: {
		{o{2, 0}, o{0, 1}, o{1, 1}, o{2, 1}},
		{o{1, 0}, o{1, 1}, o{1, 2}, o{2, 2}},
		{o{0, 1}, o{1, 1}, o{2, 1}, o{0, 2}},
		{o{0, 0}, o{1, 0}, o{1, 1}, o{1, 2}},
	},
}
