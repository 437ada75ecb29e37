package nucleides

// isotope holds the mass number, atomic mass (u) and natural abundance
// (atomic fraction) of a naturally occurring isotope.
type isotope struct {
	a         int
	mass      float64
	abundance float64
}

// element holds the proton number, standard atomic weight (u) and the
// naturally occurring isotopes of an element.
type element struct {
	z        int
	weight   float64
	isotopes []isotope
}

// elementTable covers the elements used by the built-in material library and
// the neutronics converters. Values follow the IUPAC/NIST standard atomic
// weights and isotopic compositions.
var elementTable = map[string]element{
	"H": {1, 1.008, []isotope{
		{1, 1.00782503, 0.999885},
		{2, 2.01410178, 0.000115},
	}},
	"He": {2, 4.002602, []isotope{
		{3, 3.01602932, 0.00000134},
		{4, 4.00260325, 0.99999866},
	}},
	"Li": {3, 6.94, []isotope{
		{6, 6.01512289, 0.0759},
		{7, 7.01600344, 0.9241},
	}},
	"Be": {4, 9.0121831, []isotope{
		{9, 9.01218307, 1},
	}},
	"B": {5, 10.81, []isotope{
		{10, 10.01293695, 0.199},
		{11, 11.00930536, 0.801},
	}},
	"C": {6, 12.011, []isotope{
		{12, 12.0, 0.9893},
		{13, 13.00335484, 0.0107},
	}},
	"N": {7, 14.007, []isotope{
		{14, 14.00307401, 0.99636},
		{15, 15.00010890, 0.00364},
	}},
	"O": {8, 15.999, []isotope{
		{16, 15.99491462, 0.99757},
		{17, 16.99913176, 0.00038},
		{18, 17.99915961, 0.00205},
	}},
	"Al": {13, 26.9815385, []isotope{
		{27, 26.98153853, 1},
	}},
	"Si": {14, 28.085, []isotope{
		{28, 27.97692653, 0.92223},
		{29, 28.97649466, 0.04685},
		{30, 29.97377014, 0.03092},
	}},
	"Ti": {22, 47.867, []isotope{
		{46, 45.95262772, 0.0825},
		{47, 46.95175879, 0.0744},
		{48, 47.94794198, 0.7372},
		{49, 48.94786568, 0.0541},
		{50, 49.94478689, 0.0518},
	}},
	"V": {23, 50.9415, []isotope{
		{50, 49.94715601, 0.0025},
		{51, 50.94395704, 0.9975},
	}},
	"Cr": {24, 51.9961, []isotope{
		{50, 49.94604183, 0.04345},
		{52, 51.94050623, 0.83789},
		{53, 52.94064815, 0.09501},
		{54, 53.93887916, 0.02365},
	}},
	"Mn": {25, 54.938044, []isotope{
		{55, 54.93804391, 1},
	}},
	"Fe": {26, 55.845, []isotope{
		{54, 53.93960899, 0.05845},
		{56, 55.93493633, 0.91754},
		{57, 56.93539284, 0.02119},
		{58, 57.93327443, 0.00282},
	}},
	"Ni": {28, 58.6934, []isotope{
		{58, 57.93534241, 0.68077},
		{60, 59.93078588, 0.26223},
		{61, 60.93105557, 0.011399},
		{62, 61.92834537, 0.036346},
		{64, 63.92796682, 0.009255},
	}},
	"Cu": {29, 63.546, []isotope{
		{63, 62.92959772, 0.6915},
		{65, 64.92778970, 0.3085},
	}},
	"Zn": {30, 65.38, []isotope{
		{64, 63.92914201, 0.4917},
		{66, 65.92603381, 0.2773},
		{67, 66.92712775, 0.0404},
		{68, 67.92484455, 0.1845},
		{70, 69.92531920, 0.0061},
	}},
	"Zr": {40, 91.224, []isotope{
		{90, 89.90469765, 0.5145},
		{91, 90.90563959, 0.1122},
		{92, 91.90503468, 0.1715},
		{94, 93.90631083, 0.1738},
		{96, 95.90827140, 0.0280},
	}},
	"Nb": {41, 92.90637, []isotope{
		{93, 92.90637302, 1},
	}},
	"Mo": {42, 95.95, []isotope{
		{92, 91.90680797, 0.1453},
		{94, 93.90508490, 0.0915},
		{95, 94.90583877, 0.1584},
		{96, 95.90467612, 0.1667},
		{97, 96.90601812, 0.0960},
		{98, 97.90540482, 0.2439},
		{100, 99.90747180, 0.0982},
	}},
	"Pd": {46, 106.42, []isotope{
		{102, 101.90560229, 0.0102},
		{104, 103.90403054, 0.1114},
		{105, 104.90507961, 0.2233},
		{106, 105.90348029, 0.2733},
		{108, 107.90389180, 0.2646},
		{110, 109.90517220, 0.1172},
	}},
	"Ag": {47, 107.8682, []isotope{
		{107, 106.90509155, 0.51839},
		{109, 108.90475583, 0.48161},
	}},
	"Sn": {50, 118.71, []isotope{
		{112, 111.90482387, 0.0097},
		{114, 113.90278270, 0.0066},
		{115, 114.90334469, 0.0034},
		{116, 115.90174280, 0.1454},
		{117, 116.90295398, 0.0768},
		{118, 117.90160657, 0.2422},
		{119, 118.90331117, 0.0859},
		{120, 119.90220163, 0.3258},
		{122, 121.90344390, 0.0463},
		{124, 123.90527660, 0.0579},
	}},
	"W": {74, 183.84, []isotope{
		{180, 179.94671080, 0.0012},
		{182, 181.94820394, 0.2650},
		{183, 182.95022275, 0.1431},
		{184, 183.95093092, 0.3064},
		{186, 185.95436280, 0.2843},
	}},
	"Pb": {82, 207.2, []isotope{
		{204, 203.97304400, 0.014},
		{206, 205.97446570, 0.241},
		{207, 206.97589730, 0.221},
		{208, 207.97665250, 0.524},
	}},
	"Bi": {83, 208.9804, []isotope{
		{209, 208.98039910, 1},
	}},
	"U": {92, 238.02891, []isotope{
		{234, 234.04095230, 0.000054},
		{235, 235.04392810, 0.007204},
		{238, 238.05078840, 0.992742},
	}},
}
